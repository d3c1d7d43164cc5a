package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Mode constants
const (
	ModeDev        = "dev"
	ModeProduction = "production"
)

var (
	ErrParsingConfig     = errors.New("failed to parse config from environment")
	ErrMissingSigningKey = errors.New("SIGNING_KEY must not be empty")
)

// Config holds all recognized environment options.
type Config struct {
	Port           int      `env:"PORT" envDefault:"8080"`
	Mode           string   `env:"MODE" envDefault:"production"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Token signing
	SigningKey           string `env:"SIGNING_KEY,required"`
	AccessTokenDuration  int    `env:"ACCESS_TOKEN_DURATION_IN_HOUR" envDefault:"2"`
	RefreshTokenDuration int    `env:"REFRESH_TOKEN_DURATION_IN_HOUR" envDefault:"168"`

	// Password digesting
	WorkFactor int `env:"WORK_FACTOR" envDefault:"10"`

	// Storage backend selection: memory, mongo or redis
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`

	// MongoDB (required when STORAGE_TYPE=mongo)
	MongoURI             string `env:"MONGODB_URI"`
	MongoAppName         string `env:"MONGODB_APPNAME"`
	MongoUsername        string `env:"MONGODB_USERNAME"`
	MongoPassword        string `env:"MONGODB_PASSWORD"`
	MongoDatabase        string `env:"MONGODB_DATABASE"`
	MongoGamesCollection string `env:"MONGODB_GAMES_COLLECTION" envDefault:"games"`
	MongoUsersCollection string `env:"MONGODB_USERS_COLLECTION" envDefault:"users"`

	// Redis (required when STORAGE_TYPE=redis)
	RedisURL string `env:"REDIS_URL"`
}

// AccessTokenTTL returns the configured access token lifetime.
func (c Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenDuration) * time.Hour
}

// RefreshTokenTTL returns the configured refresh token lifetime.
func (c Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenDuration) * time.Hour
}

// Load reads configuration from the environment, loading a .env file
// first when one is present.
func Load() (Config, error) {
	// The .env file is optional; a missing one is not an error
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}

	if cfg.SigningKey == "" {
		return Config{}, ErrMissingSigningKey
	}

	return cfg, nil
}
