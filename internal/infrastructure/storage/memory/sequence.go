package memory

import (
	"context"
	"time"

	"stockbook/internal/core/numerator"
)

// Sequence implements numerator.Generator on the store. Increments made
// inside a transaction are rolled back with it.
type Sequence struct {
	store *Store
}

// NewSequence creates a sequence over store.
func NewSequence(store *Store) *Sequence {
	return &Sequence{store: store}
}

func (s *Sequence) NextHint(ctx context.Context, cfg numerator.Config, date time.Time) (int64, error) {
	var hint int64
	err := s.store.view(ctx, func(st *state) error {
		key := cfg.Key(date)
		hint = st.sequences[key]
		st.sequences[key] = hint + 1
		return nil
	})
	return hint, err
}
