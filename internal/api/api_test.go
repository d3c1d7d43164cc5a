package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhattm/gameshelf/internal/api"
	"github.com/nhattm/gameshelf/internal/api/response"
	"github.com/nhattm/gameshelf/internal/config"
	"github.com/nhattm/gameshelf/internal/factory"
)

// testServer bundles the router with the mocks driving it
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T, mode string) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Mode:           mode,
		AllowedOrigins: []string{"http://localhost:3000"},
		AuthService:    app.AuthService,
		TokenService:   app.TokenService,
		CatalogService: app.CatalogService,
		Hasher:         app.Hasher,
		Storage:        app.Storage,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

// request performs a request with the given cookies and returns the recorder
func (ts *testServer) request(method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// register creates an account through the API
func (ts *testServer) register(t *testing.T, username, password string) {
	t.Helper()
	body := map[string]string{
		"username":        username,
		"password":        password,
		"confirmPassword": password,
	}
	rr := ts.request(http.MethodPost, "/auth/register", body, nil)
	require.Equal(t, http.StatusOK, rr.Code)
}

// login authenticates and returns the token cookies
func (ts *testServer) login(t *testing.T, username, password string) []*http.Cookie {
	t.Helper()
	body := map[string]string{"username": username, "password": password}
	rr := ts.request(http.MethodPost, "/auth/login", body, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 2)
	return cookies
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Message
}

func validGameBody() map[string]any {
	return map[string]any{
		"name":        "Farworld",
		"author":      "Acme Studio",
		"releaseDate": "2023-06-01",
		"category":    "roleplay",
		"description": "An open world adventure",
		"price":       20,
	}
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t, config.ModeProduction)

	rr := ts.request(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t, config.ModeProduction)

	ts.register(t, "alice", "secret123")
	cookies := ts.login(t, "alice", "secret123")

	names := []string{cookies[0].Name, cookies[1].Name}
	assert.Contains(t, names, response.AccessTokenCookie)
	assert.Contains(t, names, response.RefreshTokenCookie)
	for _, c := range cookies {
		assert.True(t, c.HttpOnly)
		assert.NotEmpty(t, c.Value)
	}
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t, config.ModeProduction)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing username", map[string]string{"password": "pw", "confirmPassword": "pw"}},
		{"missing password", map[string]string{"username": "alice"}},
		{"mismatched confirmation", map[string]string{
			"username": "alice", "password": "pw1", "confirmPassword": "pw2",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/auth/register", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.NotEmpty(t, errorMessage(t, rr))
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t, config.ModeProduction)

	ts.register(t, "alice", "secret123")

	body := map[string]string{
		"username":        "alice",
		"password":        "other",
		"confirmPassword": "other",
	}
	rr := ts.request(http.MethodPost, "/auth/register", body, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ts := newTestServer(t, config.ModeProduction)

	ts.register(t, "alice", "secret123")

	wrongPassword := ts.request(http.MethodPost, "/auth/login",
		map[string]string{"username": "alice", "password": "nope"}, nil)
	unknownUser := ts.request(http.MethodPost, "/auth/login",
		map[string]string{"username": "mallory", "password": "nope"}, nil)

	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, http.StatusBadRequest, unknownUser.Code)
	assert.Equal(t, errorMessage(t, wrongPassword), errorMessage(t, unknownUser))
}

func TestLogoutClearsCookies(t *testing.T) {
	ts := newTestServer(t, config.ModeProduction)

	rr := ts.request(http.MethodPost, "/auth/logout", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	for _, c := range rr.Result().Cookies() {
		assert.Empty(t, c.Value)
		assert.True(t, c.Expires.Before(time.Now()))
	}
}

func TestProtectedRoutesRequireTokens(t *testing.T) {
	ts := newTestServer(t, config.ModeProduction)

	rr := ts.request(http.MethodGet, "/game/all", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotEmpty(t, errorMessage(t, rr))
}

func TestCatalogCRUD(t *testing.T) {
	ts := newTestServer(t, config.ModeProduction)
	ts.register(t, "alice", "secret123")
	cookies := ts.login(t, "alice", "secret123")

	// Create
	rr := ts.request(http.MethodPost, "/game/new", validGameBody(), cookies)
	require.Equal(t, http.StatusOK, rr.Code)

	var created response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "GAMERP0001", created.ID)
	assert.Equal(t, "Farworld", created.Name)

	// List
	rr = ts.request(http.MethodGet, "/game/all", nil, cookies)
	require.Equal(t, http.StatusOK, rr.Code)

	var games []response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &games))
	assert.Len(t, games, 1)

	// Update
	rr = ts.request(http.MethodPatch, "/game/update/GAMERP0001",
		map[string]any{"price": 30}, cookies)
	require.Equal(t, http.StatusOK, rr.Code)

	var updated response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, 30, updated.Price)

	// No-op update yields 304
	rr = ts.request(http.MethodPatch, "/game/update/GAMERP0001",
		map[string]any{"price": 30}, cookies)
	assert.Equal(t, http.StatusNotModified, rr.Code)

	// Delete
	rr = ts.request(http.MethodDelete, "/game/delete/GAMERP0001", nil, cookies)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodDelete, "/game/delete/GAMERP0001", nil, cookies)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateUnknownGameWithEmptyBodyIsNotFound(t *testing.T) {
	ts := newTestServer(t, config.ModeProduction)
	ts.register(t, "alice", "secret123")
	cookies := ts.login(t, "alice", "secret123")

	rr := ts.request(http.MethodPatch, "/game/update/GAMERP9999",
		map[string]any{}, cookies)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateGameValidation(t *testing.T) {
	ts := newTestServer(t, config.ModeProduction)
	ts.register(t, "alice", "secret123")
	cookies := ts.login(t, "alice", "secret123")

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing name", func(b map[string]any) { delete(b, "name") }},
		{"missing author", func(b map[string]any) { delete(b, "author") }},
		{"missing release date", func(b map[string]any) { delete(b, "releaseDate") }},
		{"bad category", func(b map[string]any) { b["category"] = "puzzle" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validGameBody()
			tt.mutate(body)
			rr := ts.request(http.MethodPost, "/game/new", body, cookies)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.NotEmpty(t, errorMessage(t, rr))
		})
	}
}

func TestExpiredAccessTokenGetsReissuedPair(t *testing.T) {
	ts := newTestServer(t, config.ModeProduction)
	ts.register(t, "alice", "secret123")
	cookies := ts.login(t, "alice", "secret123")

	// Access window (2h) elapses; refresh window has not
	ts.app.MockClock.Advance(3 * time.Hour)

	rr := ts.request(http.MethodGet, "/game/all", nil, cookies)
	assert.Equal(t, http.StatusOK, rr.Code)

	// A fresh pair rides along on the response
	reissued := rr.Result().Cookies()
	require.Len(t, reissued, 2)

	names := []string{reissued[0].Name, reissued[1].Name}
	assert.Contains(t, names, response.AccessTokenCookie)
	assert.Contains(t, names, response.RefreshTokenCookie)

	// The reissued pair authenticates without another reissue
	rr = ts.request(http.MethodGet, "/game/all", nil, reissued)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Result().Cookies())
}

func TestFullyExpiredPairIsRejected(t *testing.T) {
	ts := newTestServer(t, config.ModeProduction)
	ts.register(t, "alice", "secret123")
	cookies := ts.login(t, "alice", "secret123")

	// Both windows elapse
	ts.app.MockClock.Advance(8 * 24 * time.Hour)

	rr := ts.request(http.MethodGet, "/game/all", nil, cookies)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGarbageTokensAreRejected(t *testing.T) {
	ts := newTestServer(t, config.ModeProduction)

	cookies := []*http.Cookie{
		{Name: response.AccessTokenCookie, Value: "not-a-token"},
		{Name: response.RefreshTokenCookie, Value: "also-not-a-token"},
	}
	rr := ts.request(http.MethodGet, "/game/all", nil, cookies)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDevRoutesOnlyInDevMode(t *testing.T) {
	prod := newTestServer(t, config.ModeProduction)
	rr := prod.request(http.MethodGet, "/game/dev/all", nil, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	dev := newTestServer(t, config.ModeDev)
	rr = dev.request(http.MethodGet, "/game/dev/all", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestDevTokenSignAndDecode(t *testing.T) {
	ts := newTestServer(t, config.ModeDev)

	rr := ts.request(http.MethodPost, "/auth/dev/token/sign",
		map[string]string{"id": "USR0001", "username": "alice"}, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var signed struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &signed))
	require.NotEmpty(t, signed.AccessToken)
	require.NotEmpty(t, signed.RefreshToken)

	rr = ts.request(http.MethodPost, "/auth/dev/token/decode", signed, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var decoded struct {
		AccessTokenPayload *struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"accessTokenPayload"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded))
	require.NotNil(t, decoded.AccessTokenPayload)
	assert.Equal(t, "USR0001", decoded.AccessTokenPayload.ID)
	assert.Equal(t, "alice", decoded.AccessTokenPayload.Username)
}
