package database

import (
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
)

// Sans keyspace users configuré, chaque constructeur doit échouer
// explicitement — jamais retourner une requête nil ou partagée.
func TestUserQueriesRequireConfiguredKeyspace(t *testing.T) {
	t.Setenv("SCYLLA_KS_USERS_KEYSPACE", "")

	for name, build := range map[string]func() (*gocql.Query, error){
		"getUserByEmail":    QueryGetUserByEmail,
		"getUserByID":       QueryGetUserByID,
		"insertUser":        QueryInsertUser,
		"insertUserByEmail": QueryInsertUserByEmail,
	} {
		q, err := build()
		assert.Error(t, err, name)
		assert.Nil(t, q, name)
	}
}
