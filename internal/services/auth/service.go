package auth

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/nhattm/gameshelf/internal/dependencies/clock"
	"github.com/nhattm/gameshelf/internal/model"
	"github.com/nhattm/gameshelf/internal/services/token"
	"github.com/nhattm/gameshelf/internal/storage"
)

// Errors
var (
	ErrInvalidUsername    = errors.New("username must not be empty or contain whitespace")
	ErrInvalidPassword    = errors.New("password must not be empty or contain whitespace")
	ErrPasswordMismatch   = errors.New("confirmPassword does not match password")
	ErrInvalidCredentials = errors.New("username or password is incorrect")
	ErrUnauthorized       = errors.New("you haven't logged in yet")
)

// cookieSkewGrace pads cookie expiry beyond the token's own expiry so
// a slightly slow client clock does not drop a still-valid token.
const cookieSkewGrace = time.Minute

// Config holds configuration for the auth service
type Config struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		AccessTokenTTL:  2 * time.Hour,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

// Service handles registration, credential verification and the
// access/refresh token session lifecycle.
type Service struct {
	storage storage.Storage
	tokens  *token.Service
	hasher  PasswordHasher
	clock   clock.Clock
	cfg     Config
}

// New creates a new auth service
func New(storage storage.Storage, tokens *token.Service, hasher PasswordHasher, clk clock.Clock, cfg Config) *Service {
	if cfg.AccessTokenTTL == 0 || cfg.RefreshTokenTTL == 0 {
		cfg = DefaultConfig()
	}
	return &Service{
		storage: storage,
		tokens:  tokens,
		hasher:  hasher,
		clock:   clk,
		cfg:     cfg,
	}
}

// Register creates a credential record for a new user. It does not
// log the user in.
func (s *Service) Register(ctx context.Context, username, password, confirmPassword string) error {
	if !validCredentialField(username) {
		return ErrInvalidUsername
	}
	if !validCredentialField(password) {
		return ErrInvalidPassword
	}
	if password != confirmPassword {
		return ErrPasswordMismatch
	}

	// Check if username exists
	_, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil {
		return model.ErrUsernameTaken
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return err
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	// Read-then-insert allocation: two concurrent registrations can
	// read the same last ID and collide. Known weakness, kept as is.
	last, err := s.storage.LastUserID(ctx)
	if err != nil {
		return err
	}

	user := &model.User{
		ID:           model.NewUserID(last),
		Username:     username,
		PasswordHash: digest,
	}

	return s.storage.InsertUser(ctx, user)
}

// Login verifies a username/password pair and returns the identity
// payload to embed in tokens. Unknown username and wrong password are
// deliberately indistinguishable.
func (s *Service) Login(ctx context.Context, username, password string) (model.Identity, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.Identity{}, ErrInvalidCredentials
		}
		return model.Identity{}, err
	}

	if !s.hasher.Matches(password, user.PasswordHash) {
		return model.Identity{}, ErrInvalidCredentials
	}

	return user.Identity(), nil
}

// RawTokens are the token strings as presented at the transport
// boundary; empty strings mark absent cookies.
type RawTokens struct {
	AccessToken  string
	RefreshToken string
}

// Session is the resolved request identity. Reissue is set when the
// session was recovered via the refresh token and a fresh pair must
// be issued.
type Session struct {
	Identity model.Identity
	Reissue  bool
}

// Resolve determines the session identity from a presented token pair.
//
// A valid, unexpired access token wins outright. Failing that, a
// valid, unexpired refresh token recovers the session and flags it
// for reissue. Anything else is unauthorized; decode failures and
// expiry are not distinguished in the outcome.
func (s *Service) Resolve(raw RawTokens) (*Session, error) {
	// Nothing presented at all: reject before decoding anything
	if raw.AccessToken == "" && raw.RefreshToken == "" {
		return nil, ErrUnauthorized
	}

	now := s.clock.Now()

	if decoded, ok := s.tokens.Decode(raw.AccessToken); ok && !decoded.Expired(now) {
		return &Session{Identity: decoded.Identity}, nil
	}

	if decoded, ok := s.tokens.Decode(raw.RefreshToken); ok && !decoded.Expired(now) {
		return &Session{Identity: decoded.Identity, Reissue: true}, nil
	}

	return nil, ErrUnauthorized
}

// TokenPair is a freshly issued access/refresh pair along with the
// cookie expiries the transport layer should attach.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// IssuePair issues a new access and refresh token as a pair, sharing
// one payload and one issuance instant. Tokens are never issued
// independently so both validity windows stay synchronized.
func (s *Service) IssuePair(identity model.Identity) (*TokenPair, error) {
	access, err := s.tokens.Issue(identity, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Issue(identity, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  now.Add(s.cfg.AccessTokenTTL + cookieSkewGrace),
		RefreshToken:     refresh,
		RefreshExpiresAt: now.Add(s.cfg.RefreshTokenTTL + cookieSkewGrace),
	}, nil
}

// validCredentialField reports whether a username or password is
// non-empty and free of whitespace.
func validCredentialField(field string) bool {
	return field != "" && !strings.ContainsFunc(field, unicode.IsSpace)
}
