package memory

import (
	"context"
	"sync"

	"github.com/nhattm/gameshelf/internal/model"
	"github.com/nhattm/gameshelf/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	usersByName map[string]*model.User
	lastUserID  model.UserID

	games      map[model.GameID]*model.Game
	lastGameID model.GameID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		usersByName: make(map[string]*model.User),
		games:       make(map[model.GameID]*model.Game),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) InsertUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.usersByName[u.Username] = &u
	s.lastUserID = u.ID
	return nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.usersByName[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) LastUserID(ctx context.Context) (model.UserID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUserID, nil
}

// Game operations

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, game := range s.games {
		g := *game
		games = append(games, &g)
	}
	return games, nil
}

func (s *Storage) InsertGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := *game
	s.games[g.ID] = &g
	s.lastGameID = g.ID
	return nil
}

func (s *Storage) UpdateGame(ctx context.Context, id model.GameID, patch model.GamePatch) (*model.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	updated := patch.Apply(*game)
	if updated == *game {
		return nil, model.ErrGameNotModified
	}
	s.games[id] = &updated
	g := updated
	return &g, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return model.ErrGameNotFound
	}
	delete(s.games, id)
	return nil
}

func (s *Storage) LastGameID(ctx context.Context) (model.GameID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastGameID, nil
}

// Ping always succeeds for in-memory storage
func (s *Storage) Ping(ctx context.Context) error {
	return nil
}
