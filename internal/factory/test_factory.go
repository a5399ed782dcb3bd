package factory

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mcoot/kmnx-league/internal/datasource"
	"github.com/mcoot/kmnx-league/internal/dependencies/mocks"
	"github.com/mcoot/kmnx-league/internal/services/classifier"
	"github.com/mcoot/kmnx-league/internal/storage/memory"
)

// TestNow is where the test clock starts: ten minutes into the embedded
// sample league's second fixture
var TestNow = time.Date(2025, 10, 12, 20, 10, 0, 0, classifier.DefaultLocation)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDs   *mocks.MockIDs
}

// NewTestApp creates an App configured for testing with mocked dependencies,
// in-memory storage and the embedded sample league
func NewTestApp() *TestApp {
	return NewTestAppWithSource(datasource.EmbeddedSource{})
}

// NewTestAppWithSource is NewTestApp with a different data source
func NewTestAppWithSource(source datasource.Source) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(TestNow)
	mockIDs := mocks.NewMockIDs()

	app := newWithDependencies(store, source, mockClock, mockIDs, classifier.DefaultConfig(), zerolog.Nop())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDs:   mockIDs,
	}
}
