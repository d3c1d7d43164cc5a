package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/nhattm/gameshelf/internal/dependencies/clock"
	"github.com/nhattm/gameshelf/internal/services/auth"
	"github.com/nhattm/gameshelf/internal/services/catalog"
	"github.com/nhattm/gameshelf/internal/services/token"
	"github.com/nhattm/gameshelf/internal/storage"
	"github.com/nhattm/gameshelf/internal/storage/memory"
	mongostorage "github.com/nhattm/gameshelf/internal/storage/mongo"
	redisstorage "github.com/nhattm/gameshelf/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeMongo  = "mongo"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	TokenService   *token.Service
	AuthService    *auth.Service
	CatalogService *catalog.Service
	Hasher         auth.PasswordHasher
}

// Config holds configuration for the application factory
type Config struct {
	// SigningKey is the secret used to sign tokens (required)
	SigningKey string
	// WorkFactor is the bcrypt cost (optional; <= 0 uses the bcrypt default)
	WorkFactor int
	// AuthConfig holds token lifetimes (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "mongo" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// MongoConfig holds MongoDB connection settings (required if StorageType is "mongo")
	MongoConfig *mongostorage.Config
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeMongo:
		if cfg.MongoConfig == nil {
			return nil, errors.New("MongoConfig required when StorageType is mongo")
		}
		mongoStore, err := mongostorage.New(ctx, *cfg.MongoConfig)
		if err != nil {
			return nil, err
		}
		store = mongoStore
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'mongo' or 'redis'")
	}

	clk := clock.New()

	return newWithDependencies(store, clk, cfg, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, cfg Config, logger *slog.Logger) (*App, error) {
	tokenService, err := token.New([]byte(cfg.SigningKey), clk)
	if err != nil {
		return nil, err
	}

	authCfg := cfg.AuthConfig
	if authCfg.AccessTokenTTL == 0 {
		authCfg = auth.DefaultConfig()
	}

	hasher := auth.NewBcryptHasher(cfg.WorkFactor)
	authService := auth.New(store, tokenService, hasher, clk, authCfg)
	catalogService := catalog.New(store, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		TokenService:   tokenService,
		AuthService:    authService,
		CatalogService: catalogService,
		Hasher:         hasher,
	}, nil
}
