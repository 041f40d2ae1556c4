package auth

import (
	"context"
	"net/http"
	"strings"

	"comic_portfolio/models"
	"comic_portfolio/permissions"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// UserLookup loads the user a token was issued to.
type UserLookup interface {
	Get(ctx context.Context, id uint) (*models.User, error)
}

// Authenticate resolves the bearer token, if any, to a user. Requests without
// an Authorization header continue anonymously; a header that is present but
// invalid is rejected with 401.
func Authenticate(tokens *TokenService, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be in format: Bearer {token}"})
			return
		}

		claims, err := tokens.Validate(bearerToken[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		user, err := users.Get(c.Request.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User inactive or deleted"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// CallerOf describes the request's authentication state for the policies.
func CallerOf(c *gin.Context) permissions.Caller {
	user, ok := CurrentUser(c)
	if !ok {
		return permissions.Anonymous()
	}
	return permissions.Caller{Authenticated: true, Admin: user.IsAdmin()}
}

// Authorize enforces policy. Denied anonymous callers get 401, denied
// authenticated callers get 403.
func Authorize(policy permissions.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := CallerOf(c)
		if policy(c.Request.Method, caller) {
			c.Next()
			return
		}

		if !caller.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided."})
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action."})
	}
}
