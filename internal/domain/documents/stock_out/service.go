package stock_out

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/numerator"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain/documents"
	"stockbook/pkg/logger"
)

// Service records issues and reads them back.
type Service struct {
	repo      Repository
	products  documents.StockKeeper
	numerator numerator.Generator
	txManager tx.Manager
	now       func() time.Time
}

// NewService creates a new stock-out service.
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

// RecordIssue takes quantity units of a product out of stock.
//
// The availability check runs against the locked product row. When the
// product holds less than quantity, INSUFFICIENT_STOCK is returned and
// nothing is written: no header, no line, no stock change and no number
// consumed.
func (s *Service) RecordIssue(ctx context.Context, in RecordInput) (*Issue, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var (
		doc      *Issue
		newStock int64
	)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.products.GetForUpdate(ctx, in.ProductCode)
		if err != nil {
			return err
		}

		if p.StockQty < in.Quantity {
			return apperror.NewInsufficientStock(p.Code, in.Quantity, p.StockQty)
		}

		now := s.now()
		cfg := numerator.DefaultConfig(NumberPrefix)
		hint, err := s.numerator.NextHint(ctx, cfg, now)
		if err != nil {
			return fmt.Errorf("allocate number: %w", err)
		}

		doc = NewIssue(cfg.Format(hint, now), now, in.Note)
		doc.AddLine(p.ID, p.Code, in.Quantity)

		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		newStock, err = s.products.AdjustStock(ctx, p.ID, -in.Quantity)
		if err != nil {
			return fmt.Errorf("adjust stock: %w", err)
		}
		return nil
	})
	if err != nil {
		if apperror.IsInsufficientStock(err) {
			logger.Warn(ctx, "stock issue rejected",
				"product_code", in.ProductCode,
				"quantity", in.Quantity,
			)
		}
		return nil, err
	}

	logger.Info(ctx, "stock issue recorded",
		"number", doc.Number,
		"product_code", in.ProductCode,
		"quantity", in.Quantity,
		"stock_qty", newStock,
	)
	return doc, nil
}

// Get returns the issue with its lines.
func (s *Service) Get(ctx context.Context, number string) (*Issue, error) {
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

// ListRecentLines returns the latest issue lines, newest first.
func (s *Service) ListRecentLines(ctx context.Context, limit int) ([]documents.LineView, error) {
	return s.repo.ListRecentLines(ctx, documents.NormalizeLimit(limit))
}
