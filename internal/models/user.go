package models

import "time"

// Role est un type fermé : toute comparaison passe par les constantes
// ci-dessous, jamais par des chaînes éparpillées dans le code métier.
type Role string

const (
	RoleBuyer Role = "buyer"
	RoleAdmin Role = "admin"
)

// ParseRole rejette tout rôle inconnu dès la frontière JWT.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleBuyer, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Identity est l'identité déjà résolue par la couche d'authentification.
// Le cœur métier ne fait qu'autoriser, jamais authentifier.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
