package services

import (
	"context"
	"sync"

	"github.com/jwebster45206/quest-engine/pkg/narrator"
	"github.com/jwebster45206/quest-engine/pkg/state"
)

// MockNarrator is a mock implementation of narrator.Narrator for testing
type MockNarrator struct {
	NarrateFunc func(ctx context.Context, req *narrator.Request) (*narrator.Response, error)

	// Track calls for testing
	NarrateCalls []*narrator.Request

	mu sync.Mutex // protects NarrateCalls
}

// NewMockNarrator creates a new mock narrator
func NewMockNarrator() *MockNarrator {
	return &MockNarrator{
		NarrateCalls: make([]*narrator.Request, 0),
	}
}

// Narrate records the request and delegates to NarrateFunc. The lock is not
// held while NarrateFunc runs so a test can block inside it.
func (m *MockNarrator) Narrate(ctx context.Context, req *narrator.Request) (*narrator.Response, error) {
	m.mu.Lock()
	m.NarrateCalls = append(m.NarrateCalls, req)
	fn := m.NarrateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}

	// Default behavior - a quiet turn
	return &narrator.Response{
		Narrative:          "Mock narration",
		ItemsAdded:         []narrator.ResponseItem{},
		ItemsRemovedNames:  []string{},
		SuggestedActions:   []string{"Look around"},
		MovementDirection:  state.None,
		CurrentTerrainType: state.TerrainPlains,
	}, nil
}

// CallCount returns how many times Narrate was called
func (m *MockNarrator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.NarrateCalls)
}

// LastRequest returns the most recent request, or nil
func (m *MockNarrator) LastRequest() *narrator.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.NarrateCalls) == 0 {
		return nil
	}
	return m.NarrateCalls[len(m.NarrateCalls)-1]
}

// Reset clears all call tracking
func (m *MockNarrator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NarrateCalls = make([]*narrator.Request, 0)
}
