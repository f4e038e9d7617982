package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mercato_back_end/internal/services"
)

// RenderError traduit la taxonomie métier en réponse HTTP. Les erreurs de
// la taxonomie sont attendues et ne sont pas journalisées ; tout le reste
// est inattendu : journalisé puis masqué derrière un 500 générique.
func RenderError(c *gin.Context, err error) {
	var stockErr *services.StockConflictError
	var transErr *services.InvalidTransitionError

	switch {
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Ressource introuvable"})
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
	case errors.As(err, &stockErr):
		// Assez de détail pour expliquer le refus sans second aller-retour
		c.JSON(http.StatusConflict, gin.H{
			"error":      "Stock insuffisant",
			"product_id": stockErr.ProductID,
			"requested":  stockErr.Requested,
			"available":  stockErr.Available,
		})
	case errors.As(err, &transErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Transition de statut invalide",
			"current":   transErr.Current,
			"requested": transErr.Requested,
		})
	default:
		log.Printf("❌ Erreur inattendue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
	}
}
