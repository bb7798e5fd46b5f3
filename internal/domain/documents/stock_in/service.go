package stock_in

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/numerator"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain/documents"
	"stockbook/pkg/logger"
)

// Service records additions and reads them back.
type Service struct {
	repo      Repository
	products  documents.StockKeeper
	numerator numerator.Generator
	txManager tx.Manager
	now       func() time.Time
}

// NewService creates a new stock-in service.
func NewService(
	repo Repository,
	products documents.StockKeeper,
	gen numerator.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		numerator: gen,
		txManager: txManager,
		now:       time.Now,
	}
}

// RecordAddition receives quantity units of a product.
//
// The number allocation, the header, the line and the stock increase are
// committed together or not at all.
func (s *Service) RecordAddition(ctx context.Context, in RecordInput) (*Addition, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var (
		doc      *Addition
		newStock int64
	)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.products.GetForUpdate(ctx, in.ProductCode)
		if err != nil {
			return err
		}
		if in.Quantity > math.MaxInt64-p.StockQty {
			return apperror.NewStockOverflow(p.Code, in.Quantity, p.StockQty)
		}

		now := s.now()
		cfg := numerator.DefaultConfig(NumberPrefix)
		hint, err := s.numerator.NextHint(ctx, cfg, now)
		if err != nil {
			return fmt.Errorf("allocate number: %w", err)
		}

		doc = NewAddition(cfg.Format(hint, now), now, in.Note)
		doc.AddLine(p.ID, p.Code, in.Quantity)

		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		newStock, err = s.products.AdjustStock(ctx, p.ID, in.Quantity)
		if err != nil {
			return fmt.Errorf("adjust stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock addition recorded",
		"number", doc.Number,
		"product_code", in.ProductCode,
		"quantity", in.Quantity,
		"stock_qty", newStock,
	)
	return doc, nil
}

// Get returns the addition with its lines.
func (s *Service) Get(ctx context.Context, number string) (*Addition, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, apperror.NewValidation("number is required").WithDetail("field", "number")
	}

	doc, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// ListRecentLines returns the latest addition lines, newest first.
func (s *Service) ListRecentLines(ctx context.Context, limit int) ([]documents.LineView, error) {
	return s.repo.ListRecentLines(ctx, documents.NormalizeLimit(limit))
}
