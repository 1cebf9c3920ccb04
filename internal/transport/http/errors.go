package http

import (
	"errors"
	"net/http"

	"battle-royale-service/internal/auth"
	"battle-royale-service/internal/domain"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRoomNotJoinable),
		errors.Is(err, domain.ErrRoomFull),
		errors.Is(err, domain.ErrDuplicateParticipant),
		errors.Is(err, domain.ErrRoomNotActive):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnknownParticipant):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusUnprocessableEntity
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
