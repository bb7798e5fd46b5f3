// Package main provides a CLI tool for seeding the registry with demo products.
package main

import (
	"context"
	"fmt"
	"os"

	"stockbook/internal/app"
	"stockbook/internal/core/apperror"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/documents"
	"stockbook/pkg/config"
	"stockbook/pkg/logger"
)

type productSeed struct {
	code    string
	name    string
	unit    string
	minQty  int64
	opening int64
}

var demoProducts = []productSeed{
	{"P001", "Widget", "pcs", 5, 40},
	{"P002", "Anchor bolt M8", "pcs", 100, 250},
	{"P003", "Cable tie 200mm", "pack", 10, 8},
	{"P004", "Epoxy resin", "kg", 2, 0},
	{"P005", "Copper wire 1.5mm", "m", 50, 120},
}

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	ctx := logger.WithLogger(context.Background(), log)

	backend, closeBackend, err := app.OpenBackend(ctx, cfg)
	if err != nil {
		log.Fatalw("failed to open storage", "error", err)
	}
	defer closeBackend()

	if err := seedProducts(ctx, app.NewServices(backend), log); err != nil {
		log.Fatalw("failed to seed products", "error", err)
	}

	log.Info("seeding completed successfully")
}

// seedProducts registers every demo product that does not exist yet and
// books its opening stock. Existing products are left untouched, so the
// command can be run repeatedly.
func seedProducts(ctx context.Context, svc *app.Services, log *logger.Logger) error {
	for _, s := range demoProducts {
		_, err := svc.Products.Register(ctx, product.RegisterInput{
			Code:   s.code,
			Name:   s.name,
			Unit:   s.unit,
			MinQty: s.minQty,
		})
		if apperror.IsDuplicate(err) {
			log.Infow("product already exists, skipping", "code", s.code)
			continue
		}
		if err != nil {
			return fmt.Errorf("register %s: %w", s.code, err)
		}

		if s.opening == 0 {
			continue
		}
		doc, err := svc.StockIn.RecordAddition(ctx, documents.RecordInput{
			ProductCode: s.code,
			Quantity:    s.opening,
			Note:        "opening balance",
		})
		if err != nil {
			return fmt.Errorf("opening stock for %s: %w", s.code, err)
		}
		log.Infow("product seeded", "code", s.code, "number", doc.Number, "stock", s.opening)
	}
	return nil
}
