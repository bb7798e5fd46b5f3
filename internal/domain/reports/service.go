package reports

import (
	"context"
	"fmt"
)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CurrentLevels lists every product with its stock, sorted by name.
func (s *Service) CurrentLevels(ctx context.Context) ([]StockLevel, error) {
	levels, err := s.repo.StockLevels(ctx)
	if err != nil {
		return nil, fmt.Errorf("get stock levels: %w", err)
	}

	for i := range levels {
		levels[i].BelowMinimum = levels[i].StockQty < levels[i].MinQty
	}
	return levels, nil
}
