package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/nhattm/gameshelf/internal/api/request"
	"github.com/nhattm/gameshelf/internal/api/response"
	"github.com/nhattm/gameshelf/internal/model"
	"github.com/nhattm/gameshelf/internal/services/auth"
	"github.com/nhattm/gameshelf/internal/services/token"
)

// devCookieTTL keeps dev-login cookies short-lived
const devCookieTTL = 2 * time.Minute

// DevHandler exposes development-only endpoints for poking at the
// hashing and token machinery. Only mounted when the server runs in
// dev mode.
type DevHandler struct {
	authService  *auth.Service
	tokenService *token.Service
	hasher       auth.PasswordHasher
	logger       *slog.Logger
}

// NewDevHandler creates a new dev handler
func NewDevHandler(authService *auth.Service, tokenService *token.Service, hasher auth.PasswordHasher, logger *slog.Logger) *DevHandler {
	return &DevHandler{
		authService:  authService,
		tokenService: tokenService,
		hasher:       hasher,
		logger:       logger,
	}
}

// Hash handles POST /auth/dev/hash and returns the bcrypt digest as plain text
func (h *DevHandler) Hash(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, h.logger, NewInvalidRequestError("invalid request body"))
		return
	}

	digest, err := h.hasher.Hash(req.Password)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(digest))
}

// SignTokens handles POST /auth/dev/token/sign
func (h *DevHandler) SignTokens(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, h.logger, NewInvalidRequestError("invalid request body"))
		return
	}

	pair, err := h.authService.IssuePair(model.Identity{
		ID:       model.UserID(req.ID),
		Username: req.Username,
	})
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// tokenPayload mirrors the claims carried by a signed token
type tokenPayload struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DecodeTokens handles POST /auth/dev/token/decode
func (h *DevHandler) DecodeTokens(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, h.logger, NewInvalidRequestError("invalid request body"))
		return
	}

	resp := map[string]*tokenPayload{
		"accessTokenPayload":  decodePayload(h.tokenService, req.AccessToken),
		"refreshTokenPayload": decodePayload(h.tokenService, req.RefreshToken),
	}
	response.JSON(w, http.StatusOK, resp)
}

func decodePayload(tokens *token.Service, raw string) *tokenPayload {
	decoded, ok := tokens.Decode(raw)
	if !ok {
		return nil
	}
	return &tokenPayload{
		ID:        string(decoded.Identity.ID),
		Username:  decoded.Identity.Username,
		IssuedAt:  decoded.IssuedAt,
		ExpiresAt: decoded.ExpiresAt,
	}
}

// Login handles POST /auth/dev/login with short-lived cookies
func (h *DevHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, h.logger, NewInvalidRequestError("invalid request body"))
		return
	}

	identity, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	pair, err := h.authService.IssuePair(identity)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	expiry := time.Now().Add(devCookieTTL)
	pair.AccessExpiresAt = expiry
	pair.RefreshExpiresAt = expiry
	response.SetTokenCookies(w, pair)
	w.WriteHeader(http.StatusOK)
}

// Authorize handles GET /auth/dev/authorize; the auth middleware does
// the actual work and this just confirms the request got through
func (h *DevHandler) Authorize(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
