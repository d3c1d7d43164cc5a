package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/nhattm/gameshelf/internal/model"
	"github.com/nhattm/gameshelf/internal/storage"
)

// ErrFailedToConnect is returned when the server cannot be reached
// within the configured retry budget.
var ErrFailedToConnect = errors.New("failed to connect to mongodb")

// Storage is a MongoDB-backed implementation of the storage interface
type Storage struct {
	client *mongo.Client
	users  *mongo.Collection
	games  *mongo.Collection
}

// New creates a new MongoDB storage instance, retrying the initial
// connection a few times before giving up.
func New(ctx context.Context, cfg Config) (*Storage, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(cfg.AppName).
		SetConnectTimeout(cfg.ConnectTimeout)

	if cfg.Username != "" {
		opts = opts.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}

	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	for range attempts {
		client, err := mongo.Connect(opts)
		if err == nil {
			if err := client.Ping(ctx, nil); err == nil {
				return NewWithClient(client, cfg), nil
			}
			_ = client.Disconnect(ctx)
		}

		// Wait for the next retry interval
		time.Sleep(cfg.RetryInterval)
	}

	return nil, ErrFailedToConnect
}

// NewWithClient creates a MongoDB storage with an existing client (for testing)
func NewWithClient(client *mongo.Client, cfg Config) *Storage {
	db := client.Database(cfg.Database)
	return &Storage{
		client: client,
		users:  db.Collection(cfg.UsersCollection),
		games:  db.Collection(cfg.GamesCollection),
	}
}

// Close disconnects from the server
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) InsertUser(ctx context.Context, user *model.User) error {
	_, err := s.users.InsertOne(ctx, user)
	return err
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := s.users.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Storage) LastUserID(ctx context.Context) (model.UserID, error) {
	id, err := s.lastID(ctx, s.users)
	return model.UserID(id), err
}

// Game operations

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	cursor, err := s.games.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	var games []*model.Game
	if err := cursor.All(ctx, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (s *Storage) InsertGame(ctx context.Context, game *model.Game) error {
	_, err := s.games.InsertOne(ctx, game)
	return err
}

func (s *Storage) UpdateGame(ctx context.Context, id model.GameID, patch model.GamePatch) (*model.Game, error) {
	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Author != nil {
		set = append(set, bson.E{Key: "author", Value: *patch.Author})
	}
	if patch.ReleaseDate != nil {
		set = append(set, bson.E{Key: "releaseDate", Value: *patch.ReleaseDate})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	if patch.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *patch.Price})
	}

	filter := bson.D{{Key: "id", Value: id}}

	// An empty $set is a server error; resolve existence directly so
	// an unknown id is still not-found rather than not-modified
	if len(set) == 0 {
		if err := s.games.FindOne(ctx, filter).Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, model.ErrGameNotFound
			}
			return nil, err
		}
		return nil, model.ErrGameNotModified
	}

	result, err := s.games.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount <= 0 {
		return nil, model.ErrGameNotFound
	}
	if result.ModifiedCount <= 0 {
		return nil, model.ErrGameNotModified
	}

	var game model.Game
	if err := s.games.FindOne(ctx, filter).Decode(&game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	result, err := s.games.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return err
	}
	if result.DeletedCount <= 0 {
		return model.ErrGameNotFound
	}
	return nil
}

func (s *Storage) LastGameID(ctx context.Context) (model.GameID, error) {
	id, err := s.lastID(ctx, s.games)
	return model.GameID(id), err
}

// Ping verifies the MongoDB connection
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// lastID fetches the application-level id of the most recently
// inserted document, leaning on _id insertion ordering.
func (s *Storage) lastID(ctx context.Context, coll *mongo.Collection) (string, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetProjection(bson.D{{Key: "_id", Value: 0}, {Key: "id", Value: 1}})

	var doc struct {
		ID string `bson:"id"`
	}
	err := coll.FindOne(ctx, bson.D{}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", err
	}
	return doc.ID, nil
}
