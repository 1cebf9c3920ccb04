package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"battle-royale-service/internal/app"
	"battle-royale-service/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	closeWait      = time.Second
	maxMessageSize = 4096
	sendBuffer     = 16
)

type WSHandler struct {
	service  *app.BattleService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.BattleService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionIndex       int     `json:"questionIndex"`
	Answer              int     `json:"answer"`
	ResponseTimeSeconds float64 `json:"responseTimeSeconds"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// frame is one queued write. A closing frame ends the connection after everything queued before it.
type frame struct {
	msg     any
	closing bool
}

// ServeWS upgrades the request and attaches the player to a room: the socket streams the
// room's events and accepts answer frames. Reconnecting with the same player id resumes the
// seat, before or during the battle.
func (h *WSHandler) ServeWS(c *gin.Context) {
	roomID := c.Query("roomId")
	player, ok := callerOr(c, c.Query("playerId"), c.Query("name"))
	if roomID == "" || !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing roomId or playerId"})
		return
	}
	ctx := c.Request.Context()

	// Subscribe before joining so the join's own events reach this socket.
	events, cancel, err := h.service.Subscribe(ctx, roomID)
	if err != nil {
		writeError(c, err)
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("ws upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	logger := log.WithFields(log.Fields{"room": roomID, "player": player.ID, "remote": conn.RemoteAddr().String()})
	logger.Info("WebSocket connected")
	defer logger.Info("WebSocket disconnected")

	if err := h.attach(ctx, roomID, player.ID, player.DisplayName); err != nil {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteJSON(outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	send := make(chan frame, sendBuffer)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	push := func(f frame) bool {
		select {
		case send <- f:
			return true
		case <-writerDone:
			return false
		}
	}

	go func() {
		defer close(writerDone)
		for f := range send {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if f.closing {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "room closed"))
				// unblocks the read loop when the peer never acknowledges the close
				_ = conn.SetReadDeadline(time.Now().Add(closeWait))
				return
			}
			if err := conn.WriteJSON(f.msg); err != nil {
				logger.WithError(err).Debug("ws write error")
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					push(frame{closing: true})
					return
				}
				if !push(frame{msg: ev}) {
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		var reply *outboundMessage
		switch inbound.Type {
		case "answer":
			reply = h.answer(c, roomID, player.ID, inbound.Payload)
		case "ping":
			reply = &outboundMessage{Type: "pong"}
		default:
			reply = &outboundMessage{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
		if reply != nil && !push(frame{msg: reply}) {
			break
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

// attach seats a new player, or lets a seated one back in whatever phase the battle is in.
func (h *WSHandler) attach(ctx context.Context, roomID, playerID, displayName string) error {
	seated, err := h.service.IsParticipant(ctx, roomID, playerID)
	if err != nil || seated {
		return err
	}
	_, err = h.service.Join(ctx, roomID, playerID, displayName)
	if errors.Is(err, domain.ErrDuplicateParticipant) {
		return nil
	}
	return err
}

// answer returns nil for stale answers; those are dropped without a reply.
func (h *WSHandler) answer(c *gin.Context, roomID, playerID string, raw json.RawMessage) *outboundMessage {
	var payload answerPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &outboundMessage{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
	}
	result, err := h.service.SubmitAnswer(c.Request.Context(), roomID, playerID, domain.AnswerSubmission{
		QuestionIndex:       payload.QuestionIndex,
		OptionIndex:         payload.Answer,
		ResponseTimeSeconds: payload.ResponseTimeSeconds,
	})
	if errors.Is(err, domain.ErrStaleQuestion) {
		return nil
	}
	if err != nil {
		return &outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}
	}
	return &outboundMessage{Type: "answer-result", Payload: result}
}
