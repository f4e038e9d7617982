package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mercato_back_end/internal/models"
)

// RequireAdmin vérifie que l'utilisateur a le rôle "admin". Les services
// revérifient de leur côté : ce middleware coupe court avant le métier.
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != string(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}
