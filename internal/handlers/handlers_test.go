package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ycsmatch/internal/auth"
	"ycsmatch/internal/handlers"
	"ycsmatch/internal/middleware"
	"ycsmatch/internal/models"
	"ycsmatch/internal/routes"
	"ycsmatch/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv wires the real services onto in-memory repositories, the way app.Run
// wires them onto postgres.
type testEnv struct {
	router *gin.Engine
	users  *memUserRepo
	resets *memResetRepo
	emails *memEmailService
	codec  *auth.Codec
	auth   services.AuthService
}

func newTestEnv(t *testing.T, upstreamURL string) *testEnv {
	t.Helper()

	users := newMemUserRepo()
	resets := newMemResetRepo()
	emails := &memEmailService{}
	codec := auth.NewCodec("handler-test-secret", time.Hour)
	authSvc := services.NewAuthService(users, codec)
	resetSvc := services.NewPasswordResetService(users, resets, emails, authSvc)
	proxySvc := services.NewProxyService(upstreamURL, time.Second)

	router := gin.New()
	router.Use(middleware.CORS())
	routes.SetupRoutes(
		router,
		handlers.NewAuthHandler(authSvc),
		handlers.NewPasswordResetHandler(resetSvc),
		handlers.NewProxyHandler(proxySvc),
	)
	return &testEnv{router: router, users: users, resets: resets, emails: emails, codec: codec, auth: authSvc}
}

func (e *testEnv) seedUser(t *testing.T, email, password, role string) {
	t.Helper()
	hash, err := e.auth.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, e.users.Create(&models.User{Email: email, PasswordHash: hash, Role: role}))
}

func (e *testEnv) postJSON(path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	env.seedUser(t, "user@example.com", "oldpass123", "member")

	t.Run("success", func(t *testing.T) {
		w := env.postJSON("/login", gin.H{"email": "user@example.com", "password": "oldpass123"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool                   `json:"success"`
			Token   string                 `json:"token"`
			User    map[string]interface{} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.True(t, resp.Success)
		require.NotContains(t, resp.User, "password_hash")
		require.Equal(t, "user@example.com", resp.User["email"])

		claims, err := env.codec.Decode(resp.Token)
		require.NoError(t, err)
		require.Equal(t, "member", claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		w := env.postJSON("/login", gin.H{"email": "user@example.com", "password": "nope"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "Invalid email or password")
	})

	t.Run("unknown email has the same error", func(t *testing.T) {
		w := env.postJSON("/login", gin.H{"email": "ghost@example.com", "password": "nope"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "Invalid email or password")
	})

	t.Run("missing fields", func(t *testing.T) {
		w := env.postJSON("/login", gin.H{"email": "user@example.com"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/login", nil)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusNoContent, w.Code)
		require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestForgotPasswordEndpoint_IndistinguishableResponses(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	env.seedUser(t, "user@example.com", "oldpass123", "member")

	registered := env.postJSON("/forgot-password", gin.H{"email": "user@example.com"})
	unknown := env.postJSON("/forgot-password", gin.H{"email": "ghost@example.com"})
	malformed := env.postJSON("/forgot-password", gin.H{"email": "not-an-email"})

	for _, w := range []*httptest.ResponseRecorder{registered, unknown, malformed} {
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"success":true}`, w.Body.String())
	}
	require.Equal(t, registered.Body.String(), unknown.Body.String())
	require.Equal(t, registered.Body.String(), malformed.Body.String())

	require.Len(t, env.emails.sentTokens, 1, "only the registered address gets a mail")
}

func TestResetPasswordEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	env.seedUser(t, "user@example.com", "oldpass123", "member")

	w := env.postJSON("/forgot-password", gin.H{"email": "user@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	token := env.emails.sentTokens[0]

	t.Run("short password", func(t *testing.T) {
		w := env.postJSON("/reset-password", gin.H{"token": token, "newPassword": "short77"})
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, w.Body.String(), "8 characters minimum")
	})

	t.Run("success then reuse rejected", func(t *testing.T) {
		w := env.postJSON("/reset-password", gin.H{"token": token, "newPassword": "newpass456"})
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"success":true}`, w.Body.String())

		again := env.postJSON("/reset-password", gin.H{"token": token, "newPassword": "thirdpass789"})
		require.Equal(t, http.StatusBadRequest, again.Code)
		require.Contains(t, again.Body.String(), "Invalid or expired token")

		login := env.postJSON("/login", gin.H{"email": "user@example.com", "password": "newpass456"})
		require.Equal(t, http.StatusOK, login.Code)
		old := env.postJSON("/login", gin.H{"email": "user@example.com", "password": "oldpass123"})
		require.Equal(t, http.StatusUnauthorized, old.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		_, err := env.resets.Create("user@example.com", "stale-token", time.Now().Add(-time.Minute))
		require.NoError(t, err)

		w := env.postJSON("/reset-password", gin.H{"token": "stale-token", "newPassword": "newpass456"})
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, w.Body.String(), "Token has expired")
	})
}

func TestProxyEndpoint(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["action"] == "deleteUser" {
			_, _ = w.Write([]byte(`{"success":true}`))
			return
		}
		_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
	}))
	defer upstream.Close()

	env := newTestEnv(t, upstream.URL)

	t.Run("forwarded with injected action", func(t *testing.T) {
		w := env.postJSON("/proxy?path=delete-user", gin.H{"userId": "u-7"})
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"success":true}`, w.Body.String())
	})

	t.Run("upstream unauthorized maps to 401", func(t *testing.T) {
		w := env.postJSON("/proxy?path=login", gin.H{"email": "x@example.com"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid path", func(t *testing.T) {
		w := env.postJSON("/proxy?path=drop-tables", gin.H{})
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, w.Body.String(), "Invalid path")
	})

	t.Run("unconfigured upstream", func(t *testing.T) {
		bare := newTestEnv(t, "")
		w := bare.postJSON("/proxy?path=login", gin.H{})
		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
