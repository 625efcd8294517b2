// internal/engine/timeprovider.go
package engine

import (
	"sync"
	"time"
)

// TimeProvider abstracts the clock source so the simulation can be driven
// deterministically in tests without real-time waiting.
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock. time.Time carries a
// monotonic reading on this platform, so Sub is immune to wall-clock jumps.
type MonotonicTimeProvider struct{}

func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

func (MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a controllable time source for tests.
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider creates a mock starting at startTime.
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance moves the mock forward by d.
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
