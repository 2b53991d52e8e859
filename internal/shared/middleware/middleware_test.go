package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"notesapi/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	users map[string]*users.User
}

func (r *stubResolver) GetCurrentUser(ctx context.Context, accessToken string) (*users.User, error) {
	user, ok := r.users[accessToken]
	if !ok {
		return nil, errors.New("could not validate credentials")
	}
	return user, nil
}

func newGuardedRouter(t *testing.T, allowed ...users.Role) (*gin.Engine, *stubResolver) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	resolver := &stubResolver{users: map[string]*users.User{}}

	engine := gin.New()
	group := engine.Group("/protected")
	group.Use(CurrentUser(resolver))
	group.GET("/me", func(c *gin.Context) {
		user, ok := UserFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	group.DELETE("/resource", RequireRoles(allowed...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	})

	return engine, resolver
}

func (r *stubResolver) addUser(role users.Role) string {
	token := "token-" + string(role)
	r.users[token] = &users.User{
		ID:    uuid.New(),
		Email: string(role) + "@example.com",
		Role:  role,
	}
	return token
}

func doAuthed(engine *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCurrentUser(t *testing.T) {
	engine, resolver := newGuardedRouter(t, users.RoleAdmin)
	token := resolver.addUser(users.RoleUser)

	t.Run("missing header", func(t *testing.T) {
		w := doAuthed(engine, http.MethodGet, "/protected/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected/me", nil)
		req.Header.Set("Authorization", "Basic abc123")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unresolvable token", func(t *testing.T) {
		w := doAuthed(engine, http.MethodGet, "/protected/me", "bogus")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token stores user in context", func(t *testing.T) {
		w := doAuthed(engine, http.MethodGet, "/protected/me", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user@example.com")
	})
}

func TestRequireRoles(t *testing.T) {
	engine, resolver := newGuardedRouter(t, users.RoleAdmin, users.RoleModerator)

	userToken := resolver.addUser(users.RoleUser)
	modToken := resolver.addUser(users.RoleModerator)
	adminToken := resolver.addUser(users.RoleAdmin)

	t.Run("role outside the allow-list is forbidden", func(t *testing.T) {
		w := doAuthed(engine, http.MethodDelete, "/protected/resource", userToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Operation forbidden")
	})

	t.Run("moderator allowed", func(t *testing.T) {
		w := doAuthed(engine, http.MethodDelete, "/protected/resource", modToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		w := doAuthed(engine, http.MethodDelete, "/protected/resource", adminToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unauthenticated request never reaches the gate", func(t *testing.T) {
		w := doAuthed(engine, http.MethodDelete, "/protected/resource", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
