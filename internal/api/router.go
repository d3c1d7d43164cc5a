package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/nhattm/gameshelf/internal/api/handler"
	"github.com/nhattm/gameshelf/internal/api/middleware"
	"github.com/nhattm/gameshelf/internal/api/response"
	"github.com/nhattm/gameshelf/internal/config"
	"github.com/nhattm/gameshelf/internal/services/auth"
	"github.com/nhattm/gameshelf/internal/services/catalog"
	"github.com/nhattm/gameshelf/internal/services/token"
	"github.com/nhattm/gameshelf/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Mode           string
	AllowedOrigins []string
	AuthService    *auth.Service
	TokenService   *token.Service
	CatalogService *catalog.Service
	Hasher         auth.PasswordHasher
	Storage        storage.Storage
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.CatalogService, cfg.Logger)

	authMiddleware := middleware.Auth(cfg.AuthService, cfg.Logger)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Account routes (no auth required)
	authRoutes := r.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	authRoutes.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Catalog routes (all require a live token pair)
	gameRoutes := r.PathPrefix("/game").Subrouter()
	gameRoutes.Use(authMiddleware)
	gameRoutes.HandleFunc("/all", gameHandler.List).Methods(http.MethodGet)
	gameRoutes.HandleFunc("/new", gameHandler.Create).Methods(http.MethodPost)
	gameRoutes.HandleFunc("/update/{id}", gameHandler.Update).Methods(http.MethodPatch)
	gameRoutes.HandleFunc("/delete/{id}", gameHandler.Delete).Methods(http.MethodDelete)

	if cfg.Mode == config.ModeDev {
		mountDevRoutes(r, cfg, gameHandler, authMiddleware)
	}

	// Health check endpoint (no auth)
	r.HandleFunc("/health", healthHandler(cfg.Storage)).Methods(http.MethodGet)

	corsMiddleware := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete,
		}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowCredentials(),
	)
	return corsMiddleware(r)
}

// mountDevRoutes exposes unprotected catalog routes and token plumbing
// endpoints for local development
func mountDevRoutes(r *mux.Router, cfg RouterConfig, gameHandler *handler.GameHandler, authMiddleware func(http.Handler) http.Handler) {
	devHandler := handler.NewDevHandler(cfg.AuthService, cfg.TokenService, cfg.Hasher, cfg.Logger)

	gameDev := r.PathPrefix("/game/dev").Subrouter()
	gameDev.HandleFunc("/all", gameHandler.List).Methods(http.MethodGet)
	gameDev.HandleFunc("/new", gameHandler.Create).Methods(http.MethodPost)
	gameDev.HandleFunc("/update/{id}", gameHandler.Update).Methods(http.MethodPatch)
	gameDev.HandleFunc("/delete/{id}", gameHandler.Delete).Methods(http.MethodDelete)

	authDev := r.PathPrefix("/auth/dev").Subrouter()
	authDev.HandleFunc("/hash", devHandler.Hash).Methods(http.MethodPost)
	authDev.HandleFunc("/token/sign", devHandler.SignTokens).Methods(http.MethodPost)
	authDev.HandleFunc("/token/decode", devHandler.DecodeTokens).Methods(http.MethodPost)
	authDev.HandleFunc("/login", devHandler.Login).Methods(http.MethodPost)
	authDev.Handle("/authorize", authMiddleware(http.HandlerFunc(devHandler.Authorize))).Methods(http.MethodGet)
}

func healthHandler(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := response.HealthResponse{Status: "ok", Storage: "ok"}
		status := http.StatusOK
		if err := store.Ping(r.Context()); err != nil {
			resp.Status = "degraded"
			resp.Storage = "unreachable"
			status = http.StatusServiceUnavailable
		}
		response.JSON(w, status, resp)
	}
}
