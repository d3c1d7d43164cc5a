package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nhattm/gameshelf/internal/dependencies/clock"
	"github.com/nhattm/gameshelf/internal/model"
)

// ErrMissingSigningKey is returned when the service is constructed
// without signing material.
var ErrMissingSigningKey = errors.New("signing key must not be empty")

// Claims are the JWT claims carried by every issued token.
type Claims struct {
	jwt.RegisteredClaims
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Decoded is the verified content of a token. Expiry is NOT evaluated
// during decoding; callers decide what an expired token means.
type Decoded struct {
	Identity  model.Identity
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry has passed at the given
// instant. The comparison is in whole epoch seconds; a token expiring
// at exactly now counts as expired.
func (d *Decoded) Expired(now time.Time) bool {
	return d.ExpiresAt.Unix() <= now.Unix()
}

// Service signs and verifies the compact bearer tokens carrying an
// identity payload. Tokens are stateless: nothing is recorded about
// issued tokens; validity is signature plus embedded expiry alone.
type Service struct {
	signingKey []byte
	clock      clock.Clock
	parser     *jwt.Parser
}

// New creates a token service with the given HMAC signing key.
func New(signingKey []byte, clk clock.Clock) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	return &Service{
		signingKey: signingKey,
		clock:      clk,
		// Expiry is checked by the caller rather than the parser, so
		// that an expired-but-authentic token still yields its payload
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

// Issue produces a signed token for the identity, expiring after ttl.
func (s *Service) Issue(identity model.Identity, ttl time.Duration) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		ID:       string(identity.ID),
		Username: identity.Username,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

// Decode parses a token and verifies its signature and structure.
// It returns false for malformed input, an unexpected algorithm or a
// bad signature. An expired token still decodes.
func (s *Service) Decode(raw string) (*Decoded, bool) {
	var claims Claims
	parsed, err := s.parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, false
	}

	decoded := &Decoded{
		Identity: model.Identity{ID: model.UserID(claims.ID), Username: claims.Username},
	}
	if claims.IssuedAt != nil {
		decoded.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		decoded.ExpiresAt = claims.ExpiresAt.Time
	}
	return decoded, true
}
