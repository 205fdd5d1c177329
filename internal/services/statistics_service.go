package services

import (
	"time"

	"budgettracker/internal/ledger"
	"budgettracker/internal/models"
	"budgettracker/internal/repository"
)

// statisticsService aggregates income and expenses across all wallets.
type statisticsService struct {
	store *repository.Store
	opts  LedgerOptions
	now   func() time.Time
}

// NewStatisticsService creates a new StatisticsServicer.
func NewStatisticsService(store *repository.Store, opts LedgerOptions) StatisticsServicer {
	return &statisticsService{store: store, opts: opts, now: time.Now}
}

// GenerateStatistics reports total income, total expenses and net income.
// The window [now - interval, now] is computed and returned, but every
// transaction in the system is folded unless ApplyStatisticsInterval is set.
// An unknown interval starts the window at now.
func (s *statisticsService) GenerateStatistics(interval models.IntervalType) (*Statistics, error) {
	end := s.now()
	start := ledger.IntervalStart(interval, end)

	var (
		txs []models.Transaction
		err error
	)
	if s.opts.ApplyStatisticsInterval {
		txs, err = s.store.Transactions.FindByDateBetween(start, end)
	} else {
		txs, err = s.store.Transactions.FindAll()
	}
	if err != nil {
		return nil, storageError(err, nil)
	}

	summary := ledger.Summarize(txs)
	return &Statistics{
		Interval:      interval,
		From:          start,
		To:            end,
		TotalIncome:   summary.TotalIncome,
		TotalExpenses: summary.TotalExpenses,
		NetIncome:     summary.Net,
	}, nil
}
