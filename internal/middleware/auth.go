package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zenith-gallery/core/internal/pkg/apperr"
	"github.com/zenith-gallery/core/internal/pkg/jwt"
	"github.com/zenith-gallery/core/internal/pkg/response"
	"go.uber.org/zap"
)

const (
	ContextKeyUserID = "user_id"
	RoleAdmin        = "admin"
)

// RoleLookup resolves the current role of a user. It is consulted on every
// guarded request so role changes take effect without reissuing tokens.
type RoleLookup interface {
	RoleOf(ctx context.Context, userID string) (string, error)
}

// Auth returns a middleware that requires a valid Bearer JWT.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := ValidateToken(extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, claims.UserID())
		c.Next()
	}
}

// OptionalAuth sets the user ID if a valid token is present, but does not block the request.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := ValidateToken(extractToken(c)); err == nil {
			c.Set(ContextKeyUserID, claims.UserID())
		}
		c.Next()
	}
}

// AdminOnly authenticates the request and requires the user to hold the admin role.
func AdminOnly(roles RoleLookup, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := ValidateToken(extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		userID := claims.UserID()
		role, err := roles.RoleOf(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				response.Unauthorized(c)
				return
			}
			response.Error(c, log, err)
			return
		}
		if role != RoleAdmin {
			response.Forbidden(c)
			return
		}
		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// ValidateToken parses a raw Authorization value and returns its claims.
func ValidateToken(rawToken string) (*jwt.Claims, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return nil, errors.New("token is required")
	}
	return jwt.Parse(token)
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// IsAuthenticated returns true if the request has a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

func extractToken(c *gin.Context) string {
	return NormalizeToken(c.GetHeader("Authorization"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
