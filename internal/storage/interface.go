package storage

import (
	"context"

	"github.com/nhattm/gameshelf/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	InsertUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// LastUserID returns the ID of the most recently inserted user,
	// or "" when no users exist.
	LastUserID(ctx context.Context) (model.UserID, error)

	// Game operations
	ListGames(ctx context.Context) ([]*model.Game, error)
	InsertGame(ctx context.Context, game *model.Game) error
	// UpdateGame applies the patch and returns the updated record.
	// Returns model.ErrGameNotFound when no record matches and
	// model.ErrGameNotModified when the patch changed nothing.
	UpdateGame(ctx context.Context, id model.GameID, patch model.GamePatch) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	// LastGameID returns the ID of the most recently inserted game,
	// whatever its category, or "" when no games exist.
	LastGameID(ctx context.Context) (model.GameID, error)

	// Ping verifies the backend is reachable
	Ping(ctx context.Context) error
}
