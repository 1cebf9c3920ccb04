package http

import (
	"net/http"

	"battle-royale-service/internal/app"
	"battle-royale-service/internal/auth"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the REST and websocket endpoints. issuer may be nil to disable authentication.
func NewRouter(service *app.BattleService, issuer *auth.Issuer, leaderboardSize int) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	battles := NewBattleHandler(service, leaderboardSize)
	api := router.Group("/api/battle")
	{
		api.GET("/leaderboard", battles.Leaderboard)
		api.GET("/rooms", battles.ListRooms)
		api.GET("/rooms/:roomId", battles.GetRoom)

		protected := api.Group("")
		protected.Use(Authenticate(issuer))
		protected.POST("/create-room", battles.CreateRoom)
		protected.POST("/join-room", battles.JoinRoom)
		protected.POST("/quick-match", battles.QuickMatch)
		protected.POST("/submit-answer", battles.SubmitAnswer)
		protected.POST("/rooms/:roomId/end", battles.EndRoom)
	}

	ws := NewWSHandler(service)
	router.GET("/ws", Authenticate(issuer), ws.ServeWS)
	return router
}
