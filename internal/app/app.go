// Package app wires storage backends to the domain services.
package app

import (
	"context"
	"fmt"

	"stockbook/internal/core/numerator"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/documents/stock_in"
	"stockbook/internal/domain/documents/stock_out"
	"stockbook/internal/domain/reports"
	infranumerator "stockbook/internal/infrastructure/numerator"
	"stockbook/internal/infrastructure/storage/memory"
	"stockbook/internal/infrastructure/storage/postgres"
	"stockbook/internal/infrastructure/storage/postgres/catalog_repo"
	"stockbook/internal/infrastructure/storage/postgres/document_repo"
	"stockbook/internal/infrastructure/storage/postgres/report_repo"
	"stockbook/pkg/config"
	"stockbook/pkg/logger"
)

// Pinger checks that the storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend is one storage implementation of every repository.
type Backend struct {
	Name      string
	TxManager tx.Manager
	Numerator numerator.Generator

	Products  product.Repository
	Additions stock_in.Repository
	Issues    stock_out.Repository
	Reports   reports.Repository

	Pinger Pinger
}

// NewMemoryBackend returns a backend that keeps everything in process.
func NewMemoryBackend() *Backend {
	store := memory.NewStore()
	return &Backend{
		Name:      "memory",
		TxManager: store,
		Numerator: memory.NewSequence(store),
		Products:  memory.NewProductRepo(store),
		Additions: memory.NewAdditionRepo(store),
		Issues:    memory.NewIssueRepo(store),
		Reports:   memory.NewReportRepo(store),
		Pinger:    store,
	}
}

// NewPostgresBackend returns a backend on pool. Closing the pool is left
// to the caller.
func NewPostgresBackend(pool *postgres.Pool, opts postgres.TxOptions) *Backend {
	txm := postgres.NewTxManager(pool, opts)
	return &Backend{
		Name:      "postgres",
		TxManager: txm,
		Numerator: infranumerator.New(txm),
		Products:  catalog_repo.NewProductRepo(txm),
		Additions: document_repo.NewStockInRepo(txm),
		Issues:    document_repo.NewStockOutRepo(txm),
		Reports:   report_repo.NewReportRepo(txm),
		Pinger:    pool,
	}
}

// Services are the entry points exposed to the presentation layer.
type Services struct {
	Products *product.Service
	StockIn  *stock_in.Service
	StockOut *stock_out.Service
	Reports  *reports.Service
}

// NewServices builds the domain services on b.
func NewServices(b *Backend) *Services {
	return &Services{
		Products: product.NewService(b.Products, b.TxManager),
		StockIn:  stock_in.NewService(b.Additions, b.Products, b.Numerator, b.TxManager),
		StockOut: stock_out.NewService(b.Issues, b.Products, b.Numerator, b.TxManager),
		Reports:  reports.NewService(b.Reports),
	}
}

// OpenBackend builds the backend selected by cfg.Storage.Driver. The
// returned close func releases the connection pool, if any.
func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		logger.Warn(ctx, "using in-memory storage, data is lost on exit")
		return NewMemoryBackend(), func() {}, nil

	case config.DriverPostgres:
		poolCfg := postgres.DefaultPoolConfig(cfg.DB.ConnectionString())
		poolCfg.ApplicationName = cfg.App.Name
		if cfg.DB.MaxConns > 0 {
			poolCfg.MaxConns = cfg.DB.MaxConns
		}

		pool, err := postgres.NewPool(ctx, poolCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}

		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
			logger.Info(ctx, "schema applied")
		}

		opts := postgres.DefaultTxOptions()
		opts.MaxAttempts = cfg.DB.TxMaxRetries
		postgres.LogPoolStats(ctx, pool.Pool)

		return NewPostgresBackend(pool, opts), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
