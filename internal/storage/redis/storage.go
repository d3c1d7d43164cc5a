package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nhattm/gameshelf/internal/model"
	"github.com/nhattm/gameshelf/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

// userRecord is the stored shape of a user. model.User hides the
// password digest from JSON serialization, but the store must keep it.
type userRecord struct {
	ID       model.UserID `json:"id"`
	Username string       `json:"username"`
	Password string       `json:"password"`
}

func (s *Storage) InsertUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(userRecord{
		ID:       user.ID,
		Username: user.Username,
		Password: user.PasswordHash,
	})
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + last-id update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.Username), data, 0)
	pipe.Set(ctx, lastUserIDKey(), string(user.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var rec userRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &model.User{
		ID:           rec.ID,
		Username:     rec.Username,
		PasswordHash: rec.Password,
	}, nil
}

func (s *Storage) LastUserID(ctx context.Context) (model.UserID, error) {
	id, err := s.client.Get(ctx, lastUserIDKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return model.UserID(id), nil
}

// Game operations

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	ids, err := s.client.SMembers(ctx, gamesIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(ids))
	for _, id := range ids {
		game, err := s.getGame(ctx, model.GameID(id))
		if err != nil {
			// Index entry without a value: a delete raced the listing
			if errors.Is(err, model.ErrGameNotFound) {
				continue
			}
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}

func (s *Storage) InsertGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), data, 0)
	pipe.SAdd(ctx, gamesIndexKey(), string(game.ID))
	pipe.Set(ctx, lastGameIDKey(), string(game.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) UpdateGame(ctx context.Context, id model.GameID, patch model.GamePatch) (*model.Game, error) {
	game, err := s.getGame(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := patch.Apply(*game)
	if updated == *game {
		return nil, model.ErrGameNotModified
	}

	data, err := json.Marshal(&updated)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, gameKey(id), data, 0).Err(); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	deleted, err := s.client.Del(ctx, gameKey(id)).Result()
	if err != nil {
		return err
	}
	if deleted <= 0 {
		return model.ErrGameNotFound
	}
	return s.client.SRem(ctx, gamesIndexKey(), string(id)).Err()
}

func (s *Storage) LastGameID(ctx context.Context) (model.GameID, error) {
	id, err := s.client.Get(ctx, lastGameIDKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return model.GameID(id), nil
}

// Ping verifies the Redis connection
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Storage) getGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}
