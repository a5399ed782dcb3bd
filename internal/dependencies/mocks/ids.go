package mocks

import (
	"fmt"

	"github.com/mcoot/kmnx-league/internal/dependencies/ids"
)

// MockIDs hands out queued IDs, then falls back to a counter
type MockIDs struct {
	queue  []string
	next   int
	issued int
}

var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates a new MockIDs
func NewMockIDs() *MockIDs {
	return &MockIDs{}
}

// NewID returns the next queued ID, or "id-<n>" once the queue is drained
func (g *MockIDs) NewID() string {
	g.issued++
	if g.next < len(g.queue) {
		id := g.queue[g.next]
		g.next++
		return id
	}
	return fmt.Sprintf("id-%d", g.issued)
}

// Queue adds IDs to hand out
func (g *MockIDs) Queue(values ...string) {
	g.queue = append(g.queue, values...)
}

// Issued returns how many IDs have been handed out
func (g *MockIDs) Issued() int {
	return g.issued
}
