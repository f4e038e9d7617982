package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mercato_back_end/internal/database"
)

const (
	APIMaxRequests = 100 // Par minute et par IP
	APIWindow      = 1 * time.Minute
)

// APIRateLimit limite les requêtes par IP via un compteur Redis.
// Sans Redis (backend mémoire), le limiteur est inactif.
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if database.Redis == nil {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "api_rate:" + c.ClientIP()

		count, err := database.Redis.Incr(ctx, key).Result()
		if err != nil {
			c.Next() // Redis en panne : on ne bloque pas le trafic
			return
		}
		if count == 1 {
			database.Redis.Expire(ctx, key, APIWindow)
		}

		if count > APIMaxRequests {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de requêtes. Réessayez dans %d secondes", int(ttl.Seconds())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
