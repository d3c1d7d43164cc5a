package redis

import (
	"fmt"

	"github.com/nhattm/gameshelf/internal/model"
)

// Key prefix for all catalog data
const keyPrefix = "gameshelf"

// Key generation functions for each entity type

// userKey returns the Redis key for a User, indexed by username since
// all credential lookups are by username.
func userKey(username string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, username)
}

// lastUserIDKey returns the Redis key holding the most recently allocated user ID
func lastUserIDKey() string {
	return fmt.Sprintf("%s:last_user_id", keyPrefix)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the SET of all game IDs
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// lastGameIDKey returns the Redis key holding the most recently allocated game ID
func lastGameIDKey() string {
	return fmt.Sprintf("%s:last_game_id", keyPrefix)
}
