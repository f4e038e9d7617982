package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/gocql/gocql"

	"mercato_back_end/internal/database"
	"mercato_back_end/internal/models"
)

// ScyllaUserStore gère les comptes dans le keyspace users, avec la table
// inversée users_by_email pour la résolution au login. Chaque requête
// obtient son propre *gocql.Query du paquet database : pas de partage
// entre goroutines, la préparation est mémoïsée côté serveur.
type ScyllaUserStore struct{}

func NewScyllaUserStore() *ScyllaUserStore {
	return &ScyllaUserStore{}
}

func (s *ScyllaUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(email)

	q, err := database.QueryGetUserByEmail()
	if err != nil {
		return nil, err
	}

	var userID gocql.UUID
	err = q.Bind(email).WithContext(ctx).Scan(&userID)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, userID.String())
}

func (s *ScyllaUserStore) FindByID(ctx context.Context, userID string) (*models.User, error) {
	uid, err := gocql.ParseUUID(userID)
	if err != nil {
		return nil, nil
	}
	q, err := database.QueryGetUserByID()
	if err != nil {
		return nil, err
	}

	user := models.User{ID: userID}
	var role string
	err = q.Bind(uid).WithContext(ctx).
		Scan(&user.Email, &user.Password, &user.Name, &role, &user.CreatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	parsed, ok := models.ParseRole(role)
	if !ok {
		parsed = models.RoleBuyer // rôle inconnu en base : on dégrade en buyer
	}
	user.Role = parsed
	return &user, nil
}

func (s *ScyllaUserStore) Create(ctx context.Context, u *models.User) error {
	uid, err := gocql.ParseUUID(u.ID)
	if err != nil {
		return err
	}
	insertUser, err := database.QueryInsertUser()
	if err != nil {
		return err
	}
	insertByEmail, err := database.QueryInsertUserByEmail()
	if err != nil {
		return err
	}

	email := strings.ToLower(u.Email)
	if err := insertUser.Bind(uid, email, u.Password, u.Name, string(u.Role), u.CreatedAt).
		WithContext(ctx).Exec(); err != nil {
		return err
	}
	return insertByEmail.Bind(email, uid).WithContext(ctx).Exec()
}
