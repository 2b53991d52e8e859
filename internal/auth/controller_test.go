package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) (*gin.Engine, Service, *fakeRepository, *fakeMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeRepository()
	mailer := newFakeMailer()
	codec := newTestCodec(t)
	svc := NewService(repo, codec, mailer, testConfig())

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewRouter(NewController(svc)).SetupRoutes(api)

	return engine, svc, repo, mailer
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func doForm(t *testing.T, engine *gin.Engine, path string, form url.Values) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func signupViaAPI(t *testing.T, engine *gin.Engine, mailer *fakeMailer, email string) mailerCall {
	t.Helper()
	w, _ := doJSON(t, engine, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"username": "alice",
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return mailer.waitForCall(t)
}

func TestSignupEndpoint(t *testing.T) {
	engine, _, _, mailer := newTestRouter(t)

	w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", resp.Status)

	var data SignupResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotNil(t, data.User)
	assert.Equal(t, "alice@example.com", data.User.Email)
	assert.Equal(t, "User successfully created. Check your email for confirmation.", data.Detail)

	mailer.waitForCall(t)

	t.Run("duplicate email", func(t *testing.T) {
		w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/auth/signup", gin.H{
			"username": "alice",
			"email":    "alice@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Account already exists", resp.Message)
	})

	t.Run("invalid payload", func(t *testing.T) {
		w, _ := doJSON(t, engine, http.MethodPost, "/api/v1/auth/signup", gin.H{
			"username": "alice",
			"email":    "not-an-email",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	engine, _, repo, mailer := newTestRouter(t)

	signupViaAPI(t, engine, mailer, "alice@example.com")

	t.Run("unconfirmed email", func(t *testing.T) {
		w, resp := doForm(t, engine, "/api/v1/auth/login", url.Values{
			"username": {"alice@example.com"},
			"password": {"secret123"},
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Email not confirmed", resp.Message)
	})

	require.NoError(t, repo.ConfirmEmail(context.Background(), "alice@example.com"))

	t.Run("unknown email", func(t *testing.T) {
		w, resp := doForm(t, engine, "/api/v1/auth/login", url.Values{
			"username": {"ghost@example.com"},
			"password": {"secret123"},
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email", resp.Message)
	})

	t.Run("wrong password", func(t *testing.T) {
		w, resp := doForm(t, engine, "/api/v1/auth/login", url.Values{
			"username": {"alice@example.com"},
			"password": {"wrong"},
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid password", resp.Message)
	})

	t.Run("success", func(t *testing.T) {
		w, resp := doForm(t, engine, "/api/v1/auth/login", url.Values{
			"username": {"alice@example.com"},
			"password": {"secret123"},
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var pair TokenPair
		require.NoError(t, json.Unmarshal(resp.Data, &pair))
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, "bearer", pair.TokenType)
	})
}

func TestRefreshTokenEndpoint(t *testing.T) {
	engine, svc, repo, mailer := newTestRouter(t)

	signupViaAPI(t, engine, mailer, "alice@example.com")
	require.NoError(t, repo.ConfirmEmail(context.Background(), "alice@example.com"))

	pair, err := svc.Login(context.Background(), &LoginRequest{Username: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	refresh := func(token string) (*httptest.ResponseRecorder, apiResponse) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/refresh_token", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		var resp apiResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return w, resp
	}

	t.Run("missing header", func(t *testing.T) {
		w, _ := refresh("")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w, resp := refresh("garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid refresh token", resp.Message)
	})

	t.Run("rotation invalidates the old token", func(t *testing.T) {
		w, resp := refresh(pair.RefreshToken)
		require.Equal(t, http.StatusOK, w.Code)

		var rotated TokenPair
		require.NoError(t, json.Unmarshal(resp.Data, &rotated))
		assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

		w, _ = refresh(pair.RefreshToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestConfirmedEmailEndpoint(t *testing.T) {
	engine, _, _, mailer := newTestRouter(t)

	call := signupViaAPI(t, engine, mailer, "alice@example.com")

	confirm := func(token string) (*httptest.ResponseRecorder, apiResponse) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/confirmed_email/"+token, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		var resp apiResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return w, resp
	}

	t.Run("invalid token", func(t *testing.T) {
		w, resp := confirm("garbage")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Verification error", resp.Message)
	})

	t.Run("confirms once then reports already confirmed", func(t *testing.T) {
		w, resp := confirm(call.Token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Email confirmed", resp.Message)

		w, resp = confirm(call.Token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Your email is already confirmed", resp.Message)
	})
}

func TestRequestEmailEndpoint(t *testing.T) {
	engine, _, repo, mailer := newTestRouter(t)

	signupViaAPI(t, engine, mailer, "alice@example.com")

	t.Run("unknown email gets the generic message", func(t *testing.T) {
		w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/auth/request_email", gin.H{
			"email": "ghost@example.com",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Check your email for confirmation.", resp.Message)
		mailer.assertNoCall(t)
	})

	t.Run("unconfirmed email gets a resend", func(t *testing.T) {
		w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/auth/request_email", gin.H{
			"email": "alice@example.com",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Check your email for confirmation.", resp.Message)
		mailer.waitForCall(t)
	})

	t.Run("confirmed email is told so", func(t *testing.T) {
		require.NoError(t, repo.ConfirmEmail(context.Background(), "alice@example.com"))

		w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/auth/request_email", gin.H{
			"email": "alice@example.com",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Your email is already confirmed", resp.Message)
	})
}
