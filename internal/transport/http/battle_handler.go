package http

import (
	"errors"
	"net/http"
	"strconv"

	"battle-royale-service/internal/app"
	"battle-royale-service/internal/domain"
	"github.com/gin-gonic/gin"
)

type BattleHandler struct {
	service         *app.BattleService
	leaderboardSize int
}

func NewBattleHandler(service *app.BattleService, leaderboardSize int) *BattleHandler {
	if leaderboardSize <= 0 {
		leaderboardSize = 50
	}
	return &BattleHandler{service: service, leaderboardSize: leaderboardSize}
}

type createRoomRequest struct {
	Capacity    int    `json:"capacity"`
	Difficulty  int    `json:"difficulty"`
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
}

type joinRoomRequest struct {
	RoomID      string `json:"roomId" binding:"required"`
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
}

type quickMatchRequest struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
	Difficulty  int    `json:"difficulty"`
}

type submitAnswerRequest struct {
	RoomID              string   `json:"roomId" binding:"required"`
	PlayerID            string   `json:"playerId"`
	QuestionIndex       int      `json:"questionIndex"`
	Answer              int      `json:"answer"`
	ResponseTimeSeconds *float64 `json:"responseTimeSeconds"`
	// ResponseTime is the older name of ResponseTimeSeconds, still sent by some clients.
	ResponseTime float64 `json:"responseTime"`
}

func (r submitAnswerRequest) responseSeconds() float64 {
	if r.ResponseTimeSeconds != nil {
		return *r.ResponseTimeSeconds
	}
	return r.ResponseTime
}

func (h *BattleHandler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	create := app.CreateRoomRequest{Capacity: req.Capacity, Difficulty: req.Difficulty}
	if player, ok := callerOr(c, req.PlayerID, req.DisplayName); ok {
		create.Host = &app.PlayerRef{PlayerID: player.ID, DisplayName: player.DisplayName}
	}
	room, err := h.service.CreateRoom(c.Request.Context(), create)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *BattleHandler) JoinRoom(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	player, ok := callerOr(c, req.PlayerID, req.DisplayName)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
		return
	}

	participants, err := h.service.Join(c.Request.Context(), req.RoomID, player.ID, player.DisplayName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roomId": req.RoomID, "participants": participants})
}

func (h *BattleHandler) QuickMatch(c *gin.Context) {
	var req quickMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	player, ok := callerOr(c, req.PlayerID, req.DisplayName)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
		return
	}

	room, err := h.service.QuickMatch(c.Request.Context(), app.PlayerRef{PlayerID: player.ID, DisplayName: player.DisplayName}, req.Difficulty)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *BattleHandler) SubmitAnswer(c *gin.Context) {
	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	player, ok := callerOr(c, req.PlayerID, "")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
		return
	}

	result, err := h.service.SubmitAnswer(c.Request.Context(), req.RoomID, player.ID, domain.AnswerSubmission{
		QuestionIndex:       req.QuestionIndex,
		OptionIndex:         req.Answer,
		ResponseTimeSeconds: req.responseSeconds(),
	})
	if errors.Is(err, domain.ErrStaleQuestion) {
		c.JSON(http.StatusAccepted, gin.H{"ignored": true})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BattleHandler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.service.OpenRooms(c.Request.Context())})
}

func (h *BattleHandler) GetRoom(c *gin.Context) {
	room, err := h.service.Room(c.Request.Context(), c.Param("roomId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *BattleHandler) EndRoom(c *gin.Context) {
	if err := h.service.Complete(c.Request.Context(), c.Param("roomId")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ended": true})
}

func (h *BattleHandler) Leaderboard(c *gin.Context) {
	limit := h.leaderboardSize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		if n < limit {
			limit = n
		}
	}

	entries, err := h.service.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
