package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"roombooking/internal/service"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInterval):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrBusy), errors.Is(err, service.ErrNotInitialized):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	code := statusOf(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		// the cause (paths, hosts) stays in the log, the kind goes to the caller
		_ = c.Error(err)
		msg = publicMessage(err)
	}
	c.JSON(code, gin.H{"error": msg})
}

func publicMessage(err error) string {
	if errors.Is(err, service.ErrStorage) {
		return service.ErrStorage.Error()
	}
	return "internal error"
}
