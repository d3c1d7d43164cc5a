package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"github.com/nhattm/gameshelf/internal/dependencies/mocks"
	"github.com/nhattm/gameshelf/internal/model"
)

const testSigningKey = "test-signing-key-for-token-tests"

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	service, err := New([]byte(testSigningKey), s.clock)
	s.Require().NoError(err)
	s.service = service
}

func (s *ServiceSuite) identity() model.Identity {
	return model.Identity{ID: "USR0001", Username: "alice"}
}

// Construction tests

func (s *ServiceSuite) TestNewFailsWithoutSigningKey() {
	_, err := New(nil, s.clock)
	s.ErrorIs(err, ErrMissingSigningKey)

	_, err = New([]byte{}, s.clock)
	s.ErrorIs(err, ErrMissingSigningKey)
}

// Issue / Decode tests

func (s *ServiceSuite) TestIssueDecodeRoundTrip() {
	raw, err := s.service.Issue(s.identity(), time.Hour)
	s.Require().NoError(err)
	s.NotEmpty(raw)

	decoded, ok := s.service.Decode(raw)
	s.Require().True(ok)
	s.Equal(s.identity(), decoded.Identity)
}

func (s *ServiceSuite) TestIssueEmbedsExpiry() {
	raw, _ := s.service.Issue(s.identity(), 2*time.Hour)

	decoded, ok := s.service.Decode(raw)
	s.Require().True(ok)
	s.Equal(s.clock.Now().Unix(), decoded.IssuedAt.Unix())
	s.Equal(s.clock.Now().Add(2*time.Hour).Unix(), decoded.ExpiresAt.Unix())
}

func (s *ServiceSuite) TestDecodeMalformedToken() {
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, ok := s.service.Decode(raw)
		s.False(ok, "token %q should not decode", raw)
	}
}

func (s *ServiceSuite) TestDecodeWrongKey() {
	other, err := New([]byte("a-completely-different-signing-key"), s.clock)
	s.Require().NoError(err)

	raw, _ := other.Issue(s.identity(), time.Hour)

	_, ok := s.service.Decode(raw)
	s.False(ok)
}

func (s *ServiceSuite) TestDecodeTamperedPayload() {
	raw, _ := s.service.Issue(s.identity(), time.Hour)

	parts := strings.Split(raw, ".")
	s.Require().Len(parts, 3)

	// Flip one byte in the claims segment, keeping header and signature
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	decoded, ok := s.service.Decode(tampered)
	s.False(ok)
	s.Nil(decoded)
}

func (s *ServiceSuite) TestDecodeRejectsUnsignedToken() {
	claims := Claims{ID: "USR0001", Username: "alice"}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	s.Require().NoError(err)

	_, ok := s.service.Decode(unsigned)
	s.False(ok)
}

// Expiry tests

func (s *ServiceSuite) TestExpiredTokenStillDecodes() {
	raw, _ := s.service.Issue(s.identity(), time.Hour)

	s.clock.Advance(2 * time.Hour)

	decoded, ok := s.service.Decode(raw)
	s.Require().True(ok, "expiry must not prevent decoding")
	s.Equal(s.identity(), decoded.Identity)
	s.True(decoded.Expired(s.clock.Now()))
}

func (s *ServiceSuite) TestExpiredBoundary() {
	raw, _ := s.service.Issue(s.identity(), time.Hour)
	decoded, ok := s.service.Decode(raw)
	s.Require().True(ok)

	s.False(decoded.Expired(s.clock.Now()))
	s.False(decoded.Expired(s.clock.Now().Add(time.Hour-time.Second)))
	// Expiring exactly now counts as expired
	s.True(decoded.Expired(s.clock.Now().Add(time.Hour)))
	s.True(decoded.Expired(s.clock.Now().Add(time.Hour+time.Second)))
}
