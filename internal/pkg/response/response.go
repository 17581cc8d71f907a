package response

import (
	"errors"
	"math/rand/v2"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zenith-gallery/core/internal/pkg/apperr"
	"go.uber.org/zap"
)

var notFoundMessages = []string{
	"Este fondo se perdió en el horizonte",
	"Aquí no hay nada que ver, ni siquiera un píxel",
	"La ruta existe en otro universo, no en este",
	"404: el lienzo está en blanco",
	"Buscamos por todas partes y no apareció",
}

// OK sends a 200 response. Slices are sent as bare JSON arrays.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message sends a 200 response with a single message field.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context) {
	abort(c, http.StatusUnauthorized, "No autorizado")
}

// UnauthorizedMsg sends a 401 error response with a custom message.
func UnauthorizedMsg(c *gin.Context, message string) {
	abort(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context) {
	abort(c, http.StatusForbidden, "Acceso denegado")
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	msg := "Not Found"
	if len(notFoundMessages) > 0 {
		msg = notFoundMessages[rand.IntN(len(notFoundMessages))]
	}
	abort(c, http.StatusNotFound, msg)
}

// NotFoundMsg sends a 404 error with a custom message.
func NotFoundMsg(c *gin.Context, message string) {
	abort(c, http.StatusNotFound, message)
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	abort(c, http.StatusConflict, message)
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context) {
	abort(c, http.StatusTooManyRequests, "Demasiadas solicitudes")
}

// InternalError sends a generic 500 response. The cause is logged, never returned.
func InternalError(c *gin.Context, log *zap.Logger, err error) {
	if log != nil && err != nil {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	abort(c, http.StatusInternalServerError, "Error del servidor")
}

// Error writes err using its apperr code. Uncoded errors become a generic 500.
func Error(c *gin.Context, log *zap.Logger, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code == apperr.CodeInternal {
		InternalError(c, log, err)
		return
	}
	abort(c, appErr.HTTPStatus(), appErr.Message)
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"ok": 0, "code": status, "message": message})
}
