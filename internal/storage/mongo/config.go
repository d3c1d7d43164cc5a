package mongo

import "time"

// Config holds MongoDB connection settings
type Config struct {
	// URI is the MongoDB connection string (e.g., mongodb://localhost:27017)
	URI      string
	AppName  string
	Username string
	Password string

	// Database and collection names
	Database        string
	UsersCollection string
	GamesCollection string

	// Connection behavior
	ConnectTimeout time.Duration
	RetryAttempts  int
	RetryInterval  time.Duration
}

// DefaultConfig returns sensible defaults for MongoDB configuration
func DefaultConfig() Config {
	return Config{
		URI:             "mongodb://localhost:27017",
		Database:        "gameshelf",
		UsersCollection: "users",
		GamesCollection: "games",
		ConnectTimeout:  10 * time.Second,
		RetryAttempts:   3,
		RetryInterval:   2 * time.Second,
	}
}
