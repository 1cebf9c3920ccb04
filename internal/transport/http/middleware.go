package http

import (
	"strings"
	"time"

	"battle-royale-service/internal/auth"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const playerKey = "player"

// RequestLogger logs method, path, status and duration of each request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
			"remote":   c.ClientIP(),
		}).Info("HTTP request")
	}
}

// Authenticate resolves the caller from a bearer token (or ?token= for websockets).
// With a nil issuer authentication is off and handlers fall back to ids in the request.
func Authenticate(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if issuer == nil {
			c.Next()
			return
		}
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			writeError(c, auth.ErrInvalidToken)
			return
		}
		player, err := issuer.Parse(token)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Set(playerKey, player)
		c.Next()
	}
}

// callerOr returns the authenticated player, or the ids supplied by the request when auth is off.
func callerOr(c *gin.Context, playerID, displayName string) (auth.Player, bool) {
	if v, ok := c.Get(playerKey); ok {
		player := v.(auth.Player)
		if player.DisplayName == "" {
			player.DisplayName = displayName
		}
		return player, true
	}
	if playerID == "" {
		return auth.Player{}, false
	}
	return auth.Player{ID: playerID, DisplayName: displayName}, true
}
