package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/modubox/lockerhub/backend-go/internal/database/models"
	"github.com/modubox/lockerhub/backend-go/internal/database/service"
)

// Context keys set by RequireAuth
const (
	ContextUserID    = "userID"
	ContextAuthority = "authority"
)

// Allowed is the capability check: does the given authority satisfy the
// required role set? An empty set allows any authenticated identity.
// It is independent of gin so the decision can be tested and reused on
// its own.
func Allowed(authority models.Authority, required ...models.Authority) bool {
	if len(required) == 0 {
		return true
	}
	for _, role := range required {
		if authority == role {
			return true
		}
	}
	return false
}

// AuthMiddleware handles JWT validation and authority checks
type AuthMiddleware struct {
	service service.AuthService
	logger  *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware instance
func NewAuthMiddleware(service service.AuthService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		service: service,
		logger:  logger,
	}
}

// RequireAuth validates the bearer token and sets the resolved identity
// (user id and authority) in the request context
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.logger.Warn("⚠️ [Middleware] Missing Authorization header")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "로그인이 필요합니다"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.logger.Warn("⚠️ [Middleware] Invalid Authorization header format")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "인증 정보가 올바르지 않습니다"})
			c.Abort()
			return
		}

		tokenString := parts[1]

		userID, authority, err := m.service.ValidateAccessToken(tokenString)
		if err != nil {
			m.logger.Warn("⚠️ [Middleware] Invalid token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "유효하지 않거나 만료된 토큰입니다"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextAuthority, authority)
		m.logger.Debug("✅ [Middleware] Token validated", "user_id", userID, "authority", authority)

		c.Next()
	}
}

// RequireAuthority rejects requests whose resolved authority is outside the
// allowed role set. Must run after RequireAuth.
func (m *AuthMiddleware) RequireAuthority(required ...models.Authority) gin.HandlerFunc {
	return func(c *gin.Context) {
		authority, exists := GetAuthority(c)
		if !exists {
			m.logger.Warn("⚠️ [Middleware] No identity in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "로그인이 필요합니다"})
			c.Abort()
			return
		}

		if !Allowed(authority, required...) {
			m.logger.Warn("⚠️ [Middleware] Authority denied",
				"authority", authority,
				"required", required,
			)
			c.JSON(http.StatusForbidden, gin.H{"error": "접근 권한이 없습니다"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID reads the authenticated user id from the request context
func GetUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

// GetAuthority reads the authenticated authority from the request context
func GetAuthority(c *gin.Context) (models.Authority, bool) {
	value, exists := c.Get(ContextAuthority)
	if !exists {
		return "", false
	}
	authority, ok := value.(models.Authority)
	return authority, ok
}
