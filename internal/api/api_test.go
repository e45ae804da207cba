package api

import (
	"encoding/hex"
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giaphaapp/giapha-server/internal/auth"
	"github.com/giaphaapp/giapha-server/internal/policy"
	"github.com/giaphaapp/giapha-server/internal/service"
	"github.com/giaphaapp/giapha-server/internal/store"
)

// apiTestServer wraps the API server for handler testing.
type apiTestServer struct {
	*Server
	api          humatest.TestAPI
	tokenService *auth.TokenService
}

// setupAPITestServer builds a server with the full route set and a generous
// rate limit so tests are never throttled.
func setupAPITestServer(t *testing.T) *apiTestServer {
	t.Helper()

	tmpDir := t.TempDir()

	st, err := store.New(filepath.Join(tmpDir, "db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	authKey, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(
		hex.EncodeToString(authKey),
		15*time.Minute,
		30*24*time.Hour,
	)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	engine := policy.New(policy.DefaultConfig())

	sessionService := service.NewSessionService(st, tokenService, logger)
	authService := service.NewAuthService(st, tokenService, sessionService, logger)

	services := &Services{
		Auth:      authService,
		Sessions:  sessionService,
		Persons:   service.NewPersonService(st, engine, logger),
		Family:    service.NewFamilyService(st, logger),
		Genealogy: service.NewGenealogyService(st, engine, logger),
		Audit:     service.NewAuditService(st, engine, logger),
	}

	router := chi.NewRouter()
	router.Use(actorMiddleware(services.Auth))

	humaConfig := huma.DefaultConfig("GiaPha API Test", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}

	hapi := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:           st,
		services:        services,
		router:          router,
		api:             hapi,
		logger:          logger,
		authRateLimiter: NewRateLimiter(1000, time.Minute, 500),
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerPersonRoutes()
	s.registerFamilyRoutes()
	s.registerProfileRoutes()
	s.registerAdminRoutes()

	return &apiTestServer{
		Server:       s,
		api:          humatest.Wrap(t, hapi),
		tokenService: tokenService,
	}
}

// setupAdmin runs initial setup and returns the admin token and user ID.
func (ts *apiTestServer) setupAdmin(t *testing.T) (token string, userID string) {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/setup", map[string]any{
		"email":        "to-truong@giapha.dev",
		"password":     "StrongPassword1!",
		"display_name": "Tộc trưởng",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Setup failed: %s", resp.Body.String())

	var body AuthResponse
	err := json.Unmarshal(resp.Body.Bytes(), &body)
	require.NoError(t, err)

	claims, err := ts.tokenService.VerifyAccessToken(body.AccessToken)
	require.NoError(t, err)

	return body.AccessToken, claims.UserID
}

// createMember registers a member, approves it as admin, and logs it in.
func (ts *apiTestServer) createMember(t *testing.T, adminToken, email string) (token string, userID string) {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":        email,
		"password":     "MemberPassword1!",
		"display_name": "Thành viên",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Register failed: %s", resp.Body.String())

	var reg RegisterResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &reg))

	resp = ts.api.Post("/api/v1/admin/users/"+reg.UserID+"/approve",
		"Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code, "Approve failed: %s", resp.Body.String())

	resp = ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    email,
		"password": "MemberPassword1!",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Login failed: %s", resp.Body.String())

	var body AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	return body.AccessToken, reg.UserID
}

// createPerson creates a person as admin and returns its ID.
func (ts *apiTestServer) createPerson(t *testing.T, adminToken string, fields map[string]any) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/persons",
		"Authorization: Bearer "+adminToken,
		fields,
	)
	require.Equal(t, http.StatusOK, resp.Code, "Create person failed: %s", resp.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	id, ok := body["id"].(string)
	require.True(t, ok, "response missing id: %s", resp.Body.String())
	return id
}

func TestSetup_CreatesRootAdmin(t *testing.T) {
	ts := setupAPITestServer(t)

	resp := ts.api.Post("/api/v1/auth/setup", map[string]any{
		"email":        "to-truong@giapha.dev",
		"password":     "StrongPassword1!",
		"display_name": "Tộc trưởng",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var body AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.NotEmpty(t, body.AccessToken)
	assert.NotEmpty(t, body.RefreshToken)
	assert.Equal(t, "Bearer", body.TokenType)
	assert.Equal(t, "admin", body.User.Role)
	assert.True(t, body.User.IsRoot)
}

func TestSetup_OnlyOnce(t *testing.T) {
	ts := setupAPITestServer(t)
	ts.setupAdmin(t)

	resp := ts.api.Post("/api/v1/auth/setup", map[string]any{
		"email":        "second@giapha.dev",
		"password":     "StrongPassword1!",
		"display_name": "Second",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := setupAPITestServer(t)
	ts.setupAdmin(t)

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "to-truong@giapha.dev",
		"password": "WrongPassword1!",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRegister_PendingUserCannotLogin(t *testing.T) {
	ts := setupAPITestServer(t)
	adminToken, _ := ts.setupAdmin(t)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":        "chau@giapha.dev",
		"password":     "MemberPassword1!",
		"display_name": "Cháu",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var reg RegisterResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &reg))

	resp = ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "chau@giapha.dev",
		"password": "MemberPassword1!",
	})
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Post("/api/v1/admin/users/"+reg.UserID+"/approve",
		"Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "chau@giapha.dev",
		"password": "MemberPassword1!",
	})
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRefresh_RotatesToken(t *testing.T) {
	ts := setupAPITestServer(t)

	resp := ts.api.Post("/api/v1/auth/setup", map[string]any{
		"email":        "to-truong@giapha.dev",
		"password":     "StrongPassword1!",
		"display_name": "Tộc trưởng",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var first AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &first))

	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": first.RefreshToken,
	})
	require.Equal(t, http.StatusOK, resp.Code, "Refresh failed: %s", resp.Body.String())

	var second AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &second))
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The old refresh token is dead after rotation.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": first.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "TOKEN_EXPIRED")
}

func TestLogout_RevokesSession(t *testing.T) {
	ts := setupAPITestServer(t)

	resp := ts.api.Post("/api/v1/auth/setup", map[string]any{
		"email":        "to-truong@giapha.dev",
		"password":     "StrongPassword1!",
		"display_name": "Tộc trưởng",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var body AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	resp = ts.api.Post("/api/v1/auth/logout", map[string]any{
		"session_id": body.SessionID,
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": body.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "TOKEN_EXPIRED")
}

func TestHealth_Reachable(t *testing.T) {
	ts := setupAPITestServer(t)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)
}
