package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/memberhub/internal/infrastructure/auth"
	"github.com/orris-inc/memberhub/internal/infrastructure/cache"
	"github.com/orris-inc/memberhub/internal/shared/constants"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
	"github.com/orris-inc/memberhub/internal/shared/utils"
)

// AuthMiddleware accepts a bearer token only while its session is still in
// the token store, so logout takes effect before the JWT expires.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	sessions   cache.SessionStore
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, sessions cache.SessionStore, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		sessions:   sessions,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization token")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		session, err := m.sessions.Get(c.Request.Context(), claims.ID)
		if err != nil {
			m.logger.Errorw("failed to load session", "session_id", claims.ID, "error", err)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}
		if session == nil || session.OperatorID != claims.OperatorID {
			abortUnauthorized(c, "session expired, please log in again")
			return
		}

		c.Set(constants.ContextKeyOperatorID, claims.OperatorID)
		c.Set(constants.ContextKeyOperatorRole, string(claims.Role))
		c.Set(constants.ContextKeySessionToken, claims.ID)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(message))
	c.Abort()
}
