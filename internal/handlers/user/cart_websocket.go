package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"mercato_back_end/internal/database"
	"mercato_back_end/internal/middleware"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket pousse le panier à jour à chaque mutation, via le canal
// Redis pub/sub sur lequel le dépôt panier publie.
func (h *CartHandler) CartWebSocket(c *gin.Context) {
	caller, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}
	if database.Redis == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Synchronisation indisponible sur ce backend"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	// Dérivé de la requête, annulé dès que le client se déconnecte :
	// l'abonnement Redis est libéré sans attendre le prochain ping.
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Pompe de lecture : détecte la fermeture côté client (la connexion
	// étant hijackée, le contexte de la requête ne suffit pas).
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pubsub := database.Redis.Subscribe(ctx, "cart:"+caller.UserID)
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	for {
		select {
		case <-ctx.Done():
			return
		case msg, open := <-ch:
			if !open {
				return
			}
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}
			cart, err := h.Carts.GetOrCreate(ctx, caller)
			if err != nil {
				log.Printf("❌ Erreur lecture panier pour le WebSocket: %v", err)
				continue
			}
			if err := conn.WriteJSON(map[string]interface{}{
				"type": "cart_updated",
				"cart": cart,
			}); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
