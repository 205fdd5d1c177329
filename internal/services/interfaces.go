package services

import (
	"os"
	"time"

	"github.com/shopspring/decimal"

	"budgettracker/internal/ledger"
	"budgettracker/internal/models"
	"budgettracker/internal/pagination"
)

// LedgerOptions switches between the historical ledger behaviour (the zero
// value) and the corrected alternatives.
type LedgerOptions struct {
	// ReconcileOnEdit adjusts the wallet balance by the money delta when a
	// transaction is edited.
	ReconcileOnEdit bool
	// ApplySearchDateFilter restricts date searches to the requested day
	// instead of returning every transaction.
	ApplySearchDateFilter bool
	// ApplySearchAmountFilter restricts amount searches to exact money
	// matches instead of returning every transaction.
	ApplySearchAmountFilter bool
	// ApplyStatisticsInterval restricts statistics to the requested window
	// instead of folding every transaction.
	ApplyStatisticsInterval bool
	// LimitMode selects how the budget limit follows a currency change.
	LimitMode ledger.LimitMode
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, username, password string) (*models.User, error)
	FindUser(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// BudgetProgress is the income/expense breakdown of a wallet computed from
// its transactions. Balance is TotalIncome - TotalExpenses and does not read
// the stored wallet amount.
type BudgetProgress struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Balance       decimal.Decimal `json:"balance"`
}

// WalletServicer defines the contract for the wallet ledger.
type WalletServicer interface {
	CreateWallet(name string, owner *models.User) (*models.Wallet, error)
	AddMoney(wallet *models.Wallet, amount decimal.Decimal) (*models.Wallet, error)
	ChangeCurrency(target models.Currency, wallet *models.Wallet) (*models.Wallet, error)
	CalculateBudgetProgress(walletID string) (*BudgetProgress, error)
	GetTotalBalance(walletID string) (decimal.Decimal, error)

	GetWalletByID(walletID string) (*models.Wallet, error)
	GetWalletByUserID(userID string) (*models.Wallet, error)
	GetWalletByUserEmail(email string) (*models.Wallet, error)
	UpdateWallet(walletID, name string, budgetLimit *decimal.Decimal) (*models.Wallet, error)
	GetTransactions(walletID string) ([]models.Transaction, error)
	GetTransactionsPage(walletID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	AddGoal(walletID, label string, target decimal.Decimal) (*models.Goal, error)
	RemoveGoal(walletID, goalID string) error
	GetGoals(walletID string) ([]models.Goal, error)
	DeleteWallet(walletID string) error
}

// SearchCriteria selects transactions. Only the first populated criterion in
// the order CategoryID, Date, Description, Amount is honoured. WalletID, when
// set, restricts whatever the criterion returns to that wallet.
type SearchCriteria struct {
	WalletID    string
	CategoryID  *string
	Date        *time.Time
	Description string
	Amount      *decimal.Decimal
}

// TransactionServicer defines the contract for the transaction lifecycle.
type TransactionServicer interface {
	PerformTransaction(tx *models.Transaction) (*models.Transaction, error)
	EditTransaction(updated *models.Transaction) (*models.Transaction, error)
	DeleteTransaction(transactionID string) error
	CalculateTotalIncome(wallet *models.Wallet) (decimal.Decimal, error)
	CalculateTotalExpenses(wallet *models.Wallet) (decimal.Decimal, error)
	SearchTransactions(criteria SearchCriteria) ([]models.Transaction, error)
	ExportTransactions() (*os.File, error)

	FindAllTransactions() ([]models.Transaction, error)
	FindTransactionByID(transactionID string) (*models.Transaction, error)
	FindTransactionsByCategory(categoryID string) ([]models.Transaction, error)
	FindTransactionsByDescription(description string) ([]models.Transaction, error)
}

// Statistics is the income/expense report for one interval. From and To
// describe the requested window; whether it was applied depends on
// LedgerOptions.ApplyStatisticsInterval.
type Statistics struct {
	Interval      models.IntervalType `json:"interval"`
	From          time.Time           `json:"from"`
	To            time.Time           `json:"to"`
	TotalIncome   decimal.Decimal     `json:"total_income"`
	TotalExpenses decimal.Decimal     `json:"total_expenses"`
	NetIncome     decimal.Decimal     `json:"net_income"`
}

// Totals returns the report keyed by its display labels.
func (s *Statistics) Totals() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"Total Income":   s.TotalIncome,
		"Total Expenses": s.TotalExpenses,
		"Net Income":     s.NetIncome,
	}
}

// StatisticsServicer defines the contract for statistics aggregation.
type StatisticsServicer interface {
	GenerateStatistics(interval models.IntervalType) (*Statistics, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string) (*models.Category, error)
	UpdateCategory(categoryID, name string) (*models.Category, error)
	RenameCategory(current, name string) (*models.Category, error)
	DeleteCategory(categoryID string) error
	GetCategory(categoryID string) (*models.Category, error)
	GetCategoryByName(name string) (*models.Category, error)
	GetAllCategories() ([]models.Category, error)
}
