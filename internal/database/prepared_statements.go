package database

import (
	"log"

	"github.com/gocql/gocql"
)

// Requêtes utilisateurs fréquentes. Les textes CQL sont constants : gocql
// prépare chaque texte une seule fois par session et réutilise la
// préparation côté serveur. Chaque appel construit un *gocql.Query neuf —
// un Query lié (Bind) ne doit jamais être partagé entre goroutines.
const (
	cqlGetUserByEmail = "SELECT user_id FROM users_by_email WHERE email = ?"
	cqlGetUserByID    = `SELECT email, password, name, role, created_at
		FROM users WHERE user_id = ?`
	cqlInsertUser = `INSERT INTO users (user_id, email, password, name, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	cqlInsertUserByEmail = "INSERT INTO users_by_email (email, user_id) VALUES (?, ?)"
)

// InitPreparedStatements vérifie que la session users est joignable au
// démarrage, pour que la préparation se fasse avant le premier login.
func InitPreparedStatements() {
	if _, err := GetUsersSession(); err != nil {
		log.Printf("⚠️ Session users indisponible au démarrage: %v", err)
		return
	}
	log.Println("✅ Requêtes utilisateurs prêtes")
}

// Résolution email → user_id
func QueryGetUserByEmail() (*gocql.Query, error) {
	session, err := GetUsersSession()
	if err != nil {
		return nil, err
	}
	return session.Query(cqlGetUserByEmail), nil
}

// Lecture d'un utilisateur par ID
func QueryGetUserByID() (*gocql.Query, error) {
	session, err := GetUsersSession()
	if err != nil {
		return nil, err
	}
	return session.Query(cqlGetUserByID), nil
}

// Insertion d'un utilisateur
func QueryInsertUser() (*gocql.Query, error) {
	session, err := GetUsersSession()
	if err != nil {
		return nil, err
	}
	return session.Query(cqlInsertUser), nil
}

// Insertion dans la table inversée users_by_email
func QueryInsertUserByEmail() (*gocql.Query, error) {
	session, err := GetUsersSession()
	if err != nil {
		return nil, err
	}
	return session.Query(cqlInsertUserByEmail), nil
}
