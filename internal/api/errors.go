package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"refbooks/internal/refbook"
)

// Тексты ответов об ошибках
const (
	MsgNotFound      = "Не найдено."
	MsgInvalidDate   = "Введите правильную дату."
	MsgInternalError = "Внутренняя ошибка сервера."
)

// statusForError: ErrNotFound -> 404, ValidationError -> 400, остальное -> 500.
func statusForError(err error) int {
	var ve *refbook.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, refbook.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusForError(err)
	switch status {
	case http.StatusBadRequest:
		var ve *refbook.ValidationError
		errors.As(err, &ve)
		c.JSON(status, ve.Messages)
	case http.StatusNotFound:
		notFound(c)
	default:
		loggerFrom(c).ErrorContext(c.Request.Context(), "request failed", "err", err)
		c.JSON(status, gin.H{"detail": MsgInternalError})
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": MsgNotFound})
}
