package middleware

import (
	"context"
	"net/http"
	"strings"

	"notesapi/internal/shared/utils/response"
	"notesapi/internal/users"

	"github.com/gin-gonic/gin"
)

// context keys set by CurrentUser
const (
	ContextUserKey  = "current_user"
	ContextUserID   = "user_id"
	ContextUserMail = "user_email"
	ContextUserRole = "user_role"
)

// UserResolver turns a presented access token into a user record.
// Satisfied by the auth service's GetCurrentUser.
type UserResolver interface {
	GetCurrentUser(ctx context.Context, accessToken string) (*users.User, error)
}

// CurrentUser guards protected endpoints: it resolves the bearer access
// token to a user and stores it in the request context, or aborts 401.
func CurrentUser(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authorization header is required", nil, nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
			c.Abort()
			return
		}

		user, err := resolver.GetCurrentUser(c.Request.Context(), parts[1])
		if err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Could not validate credentials", nil, nil)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserID, user.ID.String())
		c.Set(ContextUserMail, user.Email)
		c.Set(ContextUserRole, string(user.Role))

		c.Next()
	}
}

// UserFromContext returns the user stored by CurrentUser.
func UserFromContext(c *gin.Context) (*users.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*users.User)
	return user, ok
}

// RequireRoles checks membership of the current user's role in a static
// allow-list fixed at route registration. Must run after CurrentUser.
func RequireRoles(allowed ...users.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := UserFromContext(c)
		if !ok {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "user not found in context", nil, nil)
			c.Abort()
			return
		}

		for _, role := range allowed {
			if user.Role == role {
				c.Next()
				return
			}
		}

		response.RespondJSON(c, "error", http.StatusForbidden, "Operation forbidden", nil, nil)
		c.Abort()
	}
}
