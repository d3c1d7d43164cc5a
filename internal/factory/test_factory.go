package factory

import (
	"time"

	"github.com/nhattm/gameshelf/internal/dependencies/mocks"
	"github.com/nhattm/gameshelf/internal/storage/memory"
	"github.com/nhattm/gameshelf/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// MockClock drives token expiry in tests
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	cfg := Config{
		SigningKey: "test-signing-key",
		WorkFactor: 4,
		Logger:     testutil.NopLogger(),
	}

	app, err := newWithDependencies(store, mockClock, cfg, cfg.Logger)
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
