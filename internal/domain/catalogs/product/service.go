package product

import (
	"context"
	"strings"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/tx"
	"stockbook/pkg/logger"
)

// RegisterInput carries the fields of a new product.
type RegisterInput struct {
	Code   string
	Name   string
	Unit   string
	MinQty int64
}

// UpdateInput carries the editable descriptive fields.
type UpdateInput struct {
	Name   string
	Unit   string
	MinQty int64
}

// Service provides business operations for the product registry.
type Service struct {
	repo      Repository
	txManager tx.Manager
	now       func() time.Time
}

// NewService creates a new product service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		now:       time.Now,
	}
}

// Register creates a product with zero stock.
// A code that is already registered fails with DUPLICATE_ENTRY and leaves
// the existing product untouched.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Product, error) {
	p := NewProduct(in.Code, in.Name, in.Unit, in.MinQty, s.now())
	if err := p.Validate(); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByCode(ctx, p.Code)
		switch {
		case err == nil && existing != nil:
			return apperror.NewDuplicate("product", "code", p.Code)
		case err != nil && !apperror.IsNotFound(err):
			return err
		}

		// The unique index still guards against a concurrent registration.
		return s.repo.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "product registered", "code", p.Code, "id", p.ID)
	return p, nil
}

// GetByCode returns the product with the given code.
func (s *Service) GetByCode(ctx context.Context, code string) (*Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperror.NewValidation("code is required").WithDetail("field", "code")
	}
	return s.repo.GetByCode(ctx, code)
}

// ListAll returns every product in the requested order.
func (s *Service) ListAll(ctx context.Context, filter ListFilter) ([]*Product, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

// Update changes name, unit and minimum quantity. The stock quantity is
// owned by the ledgers and is never changed here.
func (s *Service) Update(ctx context.Context, code string, in UpdateInput) (*Product, error) {
	var updated *Product

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetForUpdate(ctx, strings.TrimSpace(code))
		if err != nil {
			return err
		}

		p.Name = strings.TrimSpace(in.Name)
		p.Unit = strings.TrimSpace(in.Unit)
		p.MinQty = in.MinQty
		p.UpdatedAt = s.now().UTC()
		if err := p.Validate(); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "product updated", "code", updated.Code)
	return updated, nil
}
