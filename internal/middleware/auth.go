// Package middleware provides the gin authentication gate: it resolves the
// bearer token to a principal and makes it available to handlers.
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SibartechCompany/eWash-Backend/internal/auth"
	"github.com/SibartechCompany/eWash-Backend/internal/httpx"
	"github.com/SibartechCompany/eWash-Backend/internal/models"
)

const currentUserKey = "current_user"

// AuthMiddleware validates access tokens and resolves principals.
type AuthMiddleware struct {
	db     *gorm.DB
	secret string
}

// NewAuthMiddleware creates a new authentication middleware.
func NewAuthMiddleware(db *gorm.DB, secret string) *AuthMiddleware {
	return &AuthMiddleware{db: db, secret: secret}
}

// RequireAuth verifies the bearer token, loads the user and stores it in the
// request context. Invalid or expired tokens get 401; a valid token for an
// inactive user gets 403.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			httpx.UnauthorizedResponse(c, "Authorization token required")
			c.Abort()
			return
		}

		userID, err := auth.ParseAccessToken(tokenString, am.secret)
		if err != nil {
			httpx.UnauthorizedResponse(c, "Could not validate credentials")
			c.Abort()
			return
		}

		var user models.User
		result := am.db.WithContext(c.Request.Context()).First(&user, "id = ?", userID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				httpx.UnauthorizedResponse(c, "Could not validate credentials")
			} else {
				httpx.InternalServerErrorResponse(c, "Failed to resolve user")
			}
			c.Abort()
			return
		}

		if !user.IsActive {
			httpx.ForbiddenResponse(c, "Inactive user")
			c.Abort()
			return
		}

		c.Set(currentUserKey, &user)
		c.Next()
	}
}

// RequireSuperuser rejects principals without the superuser flag.
func (am *AuthMiddleware) RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsSuperuser {
			httpx.ForbiddenResponse(c, "Not enough permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the principal resolved by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// extractToken extracts the JWT token from the Authorization header.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return authHeader
}
