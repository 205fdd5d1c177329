package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"budgettracker/internal/export"
	"budgettracker/internal/models"
	"budgettracker/internal/repository"
	"budgettracker/internal/testutil"
)

// fixture wires every service against one in-memory database.
type fixture struct {
	db           *gorm.DB
	store        *repository.Store
	wallets      WalletServicer
	transactions TransactionServicer
	statistics   StatisticsServicer
	users        UserServicer
	categories   CategoryServicer
}

func newFixture(t *testing.T, opts LedgerOptions) *fixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	store := repository.NewStore(db)
	txs := NewTransactionService(store, nil, export.FileSink{Path: t.TempDir() + "/transactions.txt"}, opts)
	return &fixture{
		db:           db,
		store:        store,
		wallets:      NewWalletService(store, txs, opts),
		transactions: txs,
		statistics:   NewStatisticsService(store, opts),
		users:        NewUserService(store),
		categories:   NewCategoryService(store, nil),
	}
}

// newWalletFor creates a user and a zero-balance CZK wallet through the fixtures.
func (f *fixture) newWalletFor(t *testing.T) *models.Wallet {
	t.Helper()
	user := testutil.CreateTestUser(t, f.db)
	return testutil.CreateTestWallet(t, f.db, user.ID)
}

func (f *fixture) reloadWallet(t *testing.T, id string) *models.Wallet {
	t.Helper()
	w, err := f.wallets.GetWalletByID(id)
	testutil.AssertNoError(t, err)
	return w
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}
