package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nhattm/gameshelf/internal/api/request"
	"github.com/nhattm/gameshelf/internal/api/response"
	"github.com/nhattm/gameshelf/internal/services/auth"
)

// AuthHandler handles account and session endpoints
type AuthHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, h.logger, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.authService.Register(r.Context(), req.Username, req.Password, req.ConfirmPassword); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Login handles POST /auth/login.
// On success both token cookies are set; the body is empty.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
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

	response.SetTokenCookies(w, pair)
	w.WriteHeader(http.StatusOK)
}

// Logout handles POST /auth/logout by expiring both token cookies
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	response.ClearTokenCookies(w)
	w.WriteHeader(http.StatusOK)
}
