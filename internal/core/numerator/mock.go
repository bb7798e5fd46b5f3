package numerator

import (
	"context"
	"sync"
	"time"
)

// MockGenerator is a test implementation of Generator.
// Without NextHintFunc it counts per key in memory.
type MockGenerator struct {
	NextHintFunc func(ctx context.Context, cfg Config, date time.Time) (int64, error)

	mu     sync.Mutex
	counts map[string]int64
}

// NextHint implements Generator.
func (m *MockGenerator) NextHint(ctx context.Context, cfg Config, date time.Time) (int64, error) {
	if m.NextHintFunc != nil {
		return m.NextHintFunc(ctx, cfg, date)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int64)
	}
	key := cfg.Key(date)
	hint := m.counts[key]
	m.counts[key] = hint + 1
	return hint, nil
}

// Ensure compile-time interface compliance.
var _ Generator = (*MockGenerator)(nil)
