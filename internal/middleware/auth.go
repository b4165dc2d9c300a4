package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/logger"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userKey = "user"

// TokenValidator turns a bearer token into the user id it names.
type TokenValidator interface {
	ValidateToken(tokenString string) (int64, error)
}

// IdentityLoader loads the user behind a validated token.
type IdentityLoader interface {
	Identity(ctx context.Context, userID int64) (*models.User, error)
}

// Authenticate resolves the caller from the Authorization header. Requests
// without the header continue anonymously; a malformed or invalid token is
// rejected with 401.
func Authenticate(tokens TokenValidator, identities IdentityLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromContext(c)

		// 1. --- Get Authorization Header ---
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			log.Warn("Invalid Authorization header format")
			AbortWithError(c, apperr.Unauthorized("Invalid token format (must be Bearer)"))
			return
		}

		// 2. --- Validate Token ---
		userID, err := tokens.ValidateToken(parts[1])
		if err != nil {
			log.Warn("Invalid JWT token", zap.Error(err))
			AbortWithError(c, apperr.Unauthorized("Invalid or expired token"))
			return
		}

		// 3. --- Load User ---
		user, err := identities.Identity(c.Request.Context(), userID)
		if err != nil {
			AbortWithError(c, fmt.Errorf("load user %d: %w", userID, err))
			return
		}

		// 4. --- Success ---
		c.Set(userKey, user)
		c.Set("userID", user.ID)
		scoped := log.With(zap.Int64("user_id", user.ID))
		c.Set(logger.ContextKey, scoped)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), scoped))
		c.Next()
	}
}

// CurrentUser returns the authenticated caller, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// RequireStaff admits staff users only.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checkStaff(c) {
			return
		}
		c.Next()
	}
}

// StaffOrReadOnly admits anyone to safe methods and staff to the rest.
func StaffOrReadOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if !checkStaff(c) {
			return
		}
		c.Next()
	}
}

func checkStaff(c *gin.Context) bool {
	user := CurrentUser(c)
	if user == nil {
		AbortWithError(c, apperr.Unauthorized("Authentication credentials were not provided."))
		return false
	}
	if !user.IsStaff {
		logger.FromContext(c).Warn("Staff-only action refused", zap.Int64("user_id", user.ID))
		AbortWithError(c, apperr.PermissionDenied("You do not have permission to perform this action."))
		return false
	}
	return true
}
