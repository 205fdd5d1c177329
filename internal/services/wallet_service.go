package services

import (
	"github.com/shopspring/decimal"

	apperrors "budgettracker/internal/errors"
	"budgettracker/internal/ledger"
	"budgettracker/internal/logger"
	"budgettracker/internal/models"
	"budgettracker/internal/pagination"
	"budgettracker/internal/repository"
)

// Defaults for newly created wallets.
var (
	DefaultBudgetLimit = decimal.NewFromInt(100000)
	DefaultCurrency    = models.CurrencyCZK
)

const walletNameSuffix = "Wallet"

// walletService handles the wallet ledger.
type walletService struct {
	store        *repository.Store
	transactions TransactionServicer
	opts         LedgerOptions
}

// NewWalletService creates a new WalletServicer. Budget progress is computed
// through transactions so both services agree on the aggregation.
func NewWalletService(store *repository.Store, transactions TransactionServicer, opts LedgerOptions) WalletServicer {
	return &walletService{store: store, transactions: transactions, opts: opts}
}

// newWallet builds the initial wallet of owner. The name is not validated.
func newWallet(name string, owner *models.User) *models.Wallet {
	return &models.Wallet{
		UserID:      owner.ID,
		Name:        name + walletNameSuffix,
		Amount:      decimal.Zero,
		Currency:    DefaultCurrency,
		BudgetLimit: DefaultBudgetLimit,
	}
}

// CreateWallet creates and persists the wallet of owner.
func (s *walletService) CreateWallet(name string, owner *models.User) (*models.Wallet, error) {
	if owner == nil {
		return nil, apperrors.WithMessage(apperrors.ErrNullArgument, "wallet owner is required")
	}

	wallet := newWallet(name, owner)
	if err := s.store.Wallets.Save(wallet); err != nil {
		return nil, storageError(err, nil)
	}

	logger.Get().Infow("Wallet created", "wallet_id", wallet.ID, "user_id", owner.ID)
	return wallet, nil
}

// AddMoney adds amount to the wallet balance. A negative amount withdraws.
// wallet is only updated once the new balance is stored.
func (s *walletService) AddMoney(wallet *models.Wallet, amount decimal.Decimal) (*models.Wallet, error) {
	if wallet == nil {
		return nil, apperrors.WithMessage(apperrors.ErrNullArgument, "wallet is required")
	}

	updated := *wallet
	updated.Amount = updated.Amount.Add(amount)
	if err := s.store.Wallets.Save(&updated); err != nil {
		return nil, storageError(err, nil)
	}
	*wallet = updated
	return wallet, nil
}

// ChangeCurrency converts the wallet amount and budget limit into target.
func (s *walletService) ChangeCurrency(target models.Currency, wallet *models.Wallet) (*models.Wallet, error) {
	if wallet == nil {
		return nil, apperrors.WithMessage(apperrors.ErrNullArgument, "wallet is required")
	}
	if !target.Valid() {
		return nil, apperrors.ErrUnsupportedCurrency
	}

	updated := *wallet
	ledger.ConvertWallet(&updated, target, s.opts.LimitMode)
	if err := s.store.Wallets.Save(&updated); err != nil {
		return nil, storageError(err, nil)
	}
	*wallet = updated
	return wallet, nil
}

// CalculateBudgetProgress derives income, expenses and balance from the
// wallet's transactions.
func (s *walletService) CalculateBudgetProgress(walletID string) (*BudgetProgress, error) {
	wallet, err := s.GetWalletByID(walletID)
	if err != nil {
		return nil, err
	}

	income, err := s.transactions.CalculateTotalIncome(wallet)
	if err != nil {
		return nil, err
	}
	expenses, err := s.transactions.CalculateTotalExpenses(wallet)
	if err != nil {
		return nil, err
	}

	return &BudgetProgress{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Sub(expenses),
	}, nil
}

// GetTotalBalance returns the stored wallet amount.
func (s *walletService) GetTotalBalance(walletID string) (decimal.Decimal, error) {
	wallet, err := s.GetWalletByID(walletID)
	if err != nil {
		return decimal.Zero, err
	}
	return wallet.Amount, nil
}

// GetWalletByID retrieves a wallet by ID
func (s *walletService) GetWalletByID(walletID string) (*models.Wallet, error) {
	if walletID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrNullArgument, "wallet id is required")
	}
	wallet, err := s.store.Wallets.FindByID(walletID)
	if err != nil {
		return nil, storageError(err, apperrors.ErrWalletNotFound)
	}
	return wallet, nil
}

// GetWalletByUserID retrieves the wallet owned by a user
func (s *walletService) GetWalletByUserID(userID string) (*models.Wallet, error) {
	wallet, err := s.store.Wallets.FindByUserID(userID)
	if err != nil {
		return nil, storageError(err, apperrors.ErrWalletNotFound)
	}
	return wallet, nil
}

// GetWalletByUserEmail retrieves the wallet owned by the user with email
func (s *walletService) GetWalletByUserEmail(email string) (*models.Wallet, error) {
	wallet, err := s.store.Wallets.FindByUserEmail(email)
	if err != nil {
		return nil, storageError(err, apperrors.ErrWalletNotFound)
	}
	return wallet, nil
}

// UpdateWallet renames the wallet and optionally replaces its budget limit.
// An empty name keeps the current one.
func (s *walletService) UpdateWallet(walletID, name string, budgetLimit *decimal.Decimal) (*models.Wallet, error) {
	wallet, err := s.GetWalletByID(walletID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		wallet.Name = name
	}
	if budgetLimit != nil {
		if budgetLimit.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget limit must not be negative")
		}
		wallet.BudgetLimit = *budgetLimit
	}

	if err := s.store.Wallets.Save(wallet); err != nil {
		return nil, storageError(err, nil)
	}
	return wallet, nil
}

// GetTransactions returns every transaction booked against the wallet.
func (s *walletService) GetTransactions(walletID string) ([]models.Transaction, error) {
	if _, err := s.GetWalletByID(walletID); err != nil {
		return nil, err
	}
	txs, err := s.store.Transactions.FindByWalletID(walletID)
	if err != nil {
		return nil, storageError(err, nil)
	}
	return txs, nil
}

// GetTransactionsPage returns one page of the wallet's transactions, newest first.
func (s *walletService) GetTransactionsPage(walletID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	if _, err := s.GetWalletByID(walletID); err != nil {
		return nil, err
	}
	txs, total, err := s.store.Transactions.PageByWalletID(walletID, page)
	if err != nil {
		return nil, storageError(err, nil)
	}

	result := pagination.NewPageResponse(txs, page.Page, page.PageSize, total)
	return &result, nil
}

// AddGoal attaches a new savings goal to the wallet.
func (s *walletService) AddGoal(walletID, label string, target decimal.Decimal) (*models.Goal, error) {
	if label == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal label is required")
	}
	wallet, err := s.GetWalletByID(walletID)
	if err != nil {
		return nil, err
	}

	goal := &models.Goal{Goal: label, MoneyGoal: target}
	wallet.AddGoal(goal)
	if err := s.store.Goals.Save(goal); err != nil {
		return nil, storageError(err, nil)
	}
	return goal, nil
}

// RemoveGoal detaches the goal from the wallet and deletes it.
func (s *walletService) RemoveGoal(walletID, goalID string) error {
	wallet, err := s.GetWalletByID(walletID)
	if err != nil {
		return err
	}
	goal, err := s.store.Goals.FindByID(goalID)
	if err != nil {
		return storageError(err, apperrors.ErrGoalNotFound)
	}
	if goal.WalletID == nil || *goal.WalletID != wallet.ID {
		return apperrors.ErrGoalNotFound
	}

	return s.store.Atomic(func(tx *repository.Store) error {
		wallet.RemoveGoal(goal)
		if err := tx.Goals.Save(goal); err != nil {
			return storageError(err, nil)
		}
		if err := tx.Goals.Delete(goal); err != nil {
			return storageError(err, nil)
		}
		return nil
	})
}

// GetGoals returns the wallet's goals in creation order.
func (s *walletService) GetGoals(walletID string) ([]models.Goal, error) {
	if _, err := s.GetWalletByID(walletID); err != nil {
		return nil, err
	}
	goals, err := s.store.Goals.FindByWalletID(walletID)
	if err != nil {
		return nil, storageError(err, nil)
	}
	return goals, nil
}

// DeleteWallet deletes the wallet together with its goals. Transactions are
// left in place.
func (s *walletService) DeleteWallet(walletID string) error {
	wallet, err := s.GetWalletByID(walletID)
	if err != nil {
		return err
	}

	return s.store.Atomic(func(tx *repository.Store) error {
		if err := tx.Goals.DeleteByWalletID(wallet.ID); err != nil {
			return storageError(err, nil)
		}
		if err := tx.Wallets.Delete(wallet); err != nil {
			return storageError(err, nil)
		}
		return nil
	})
}
