package server

import (
	"fmt"
	"io"

	"gorm.io/gorm"

	"budgettracker/internal/cache"
	"budgettracker/internal/config"
	"budgettracker/internal/export"
	"budgettracker/internal/ledger"
	"budgettracker/internal/logger"
	"budgettracker/internal/models"
	"budgettracker/internal/repository"
	"budgettracker/internal/services"
)

// Services bundles the business services the router exposes.
type Services struct {
	Users        services.UserServicer
	Wallets      services.WalletServicer
	Transactions services.TransactionServicer
	Statistics   services.StatisticsServicer
	Categories   services.CategoryServicer
}

// Caches holds the per-entity caches used by the services.
type Caches struct {
	Categories   cache.Cache[models.Category]
	Transactions cache.Cache[models.Transaction]
}

// LedgerOptions translates the ledger switches of cfg.
func LedgerOptions(cfg *config.Config) services.LedgerOptions {
	opts := services.LedgerOptions{
		ReconcileOnEdit:         cfg.ReconcileOnEdit,
		ApplySearchDateFilter:   cfg.ApplySearchDateFilter,
		ApplySearchAmountFilter: cfg.ApplySearchAmountFilter,
		ApplyStatisticsInterval: cfg.ApplyStatisticsInterval,
		LimitMode:               ledger.LimitFromAmount,
	}
	if cfg.CurrencyLimitMode == "limit" {
		opts.LimitMode = ledger.LimitFromLimit
	}
	return opts
}

// NewCaches builds the caches selected by cfg.CacheDriver. The returned
// closer releases the redis connection, if any.
func NewCaches(cfg *config.Config) (Caches, io.Closer, error) {
	switch cfg.CacheDriver {
	case "none":
		return Caches{
			Categories:   cache.NewNoop[models.Category](),
			Transactions: cache.NewNoop[models.Transaction](),
		}, nopCloser{}, nil
	case "memory", "":
		return Caches{
			Categories:   cache.NewMemory[models.Category](cfg.CacheSize, cfg.CacheTTL),
			Transactions: cache.NewMemory[models.Transaction](cfg.CacheSize, cfg.CacheTTL),
		}, nopCloser{}, nil
	case "redis":
		client, err := cache.NewRedisClient(cache.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return Caches{}, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddress, err)
		}
		logger.Get().Infow("Redis cache connected", "address", cfg.RedisAddress, "db", cfg.RedisDB)
		return Caches{
			Categories:   cache.NewRedis[models.Category](client, "categories", cfg.CacheTTL),
			Transactions: cache.NewRedis[models.Transaction](client, "transactions", cfg.CacheTTL),
		}, client, nil
	default:
		return Caches{}, nil, fmt.Errorf("unknown cache driver %q", cfg.CacheDriver)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewServices wires every service on top of db.
func NewServices(db *gorm.DB, cfg *config.Config, caches Caches) *Services {
	store := repository.NewStore(db)
	opts := LedgerOptions(cfg)

	transactions := services.NewTransactionService(store, caches.Transactions, export.FileSink{Path: cfg.ExportPath}, opts)
	return &Services{
		Users:        services.NewUserService(store),
		Wallets:      services.NewWalletService(store, transactions, opts),
		Transactions: transactions,
		Statistics:   services.NewStatisticsService(store, opts),
		Categories:   services.NewCategoryService(store, caches.Categories),
	}
}
