package services

import (
	"errors"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"budgettracker/internal/cache"
	apperrors "budgettracker/internal/errors"
	"budgettracker/internal/export"
	"budgettracker/internal/ledger"
	"budgettracker/internal/logger"
	"budgettracker/internal/models"
	"budgettracker/internal/repository"
)

// transactionService handles the transaction lifecycle.
type transactionService struct {
	store *repository.Store
	cache cache.Cache[models.Transaction]
	sink  export.FileSink
	opts  LedgerOptions
	now   func() time.Time
}

// NewTransactionService creates a new TransactionServicer. A nil cache
// disables caching.
func NewTransactionService(store *repository.Store, c cache.Cache[models.Transaction], sink export.FileSink, opts LedgerOptions) TransactionServicer {
	if c == nil {
		c = cache.NewNoop[models.Transaction]()
	}
	return &transactionService{store: store, cache: c, sink: sink, opts: opts, now: time.Now}
}

// PerformTransaction books tx against its wallet: the wallet balance moves
// by tx.Money, the type is derived from the sign and both rows are written
// in one database transaction.
func (s *transactionService) PerformTransaction(tx *models.Transaction) (*models.Transaction, error) {
	if tx == nil {
		return nil, apperrors.WithMessage(apperrors.ErrNullArgument, "transaction is required")
	}
	if tx.Description == "" {
		return nil, apperrors.ErrEmptyDescription
	}
	if tx.Date.IsZero() {
		tx.Date = s.now()
	}

	err := s.store.Atomic(func(store *repository.Store) error {
		wallet, err := store.Wallets.FindByID(tx.WalletID)
		if err != nil {
			return storageError(err, apperrors.ErrWalletNotFound)
		}

		if tx.CategoryID != nil {
			category, err := store.Categories.FindByID(*tx.CategoryID)
			if err != nil {
				return storageError(err, apperrors.ErrCategoryNotFound)
			}
			tx.Category = category
		}

		wallet.Amount = wallet.Amount.Add(tx.Money)
		if err := store.Wallets.Save(wallet); err != nil {
			return storageError(err, nil)
		}

		tx.Type = ledger.Classify(tx.Money)
		if err := store.Transactions.Save(tx); err != nil {
			return storageError(err, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("Transaction performed",
		"transaction_id", tx.ID, "wallet_id", tx.WalletID, "type", tx.Type, "money", tx.Money.String())
	return tx, nil
}

// EditTransaction copies the editable fields of updated onto the stored
// transaction and reclassifies it by the sign of its money. The wallet
// balance only follows the edit when ReconcileOnEdit is set.
func (s *transactionService) EditTransaction(updated *models.Transaction) (*models.Transaction, error) {
	if updated == nil {
		return nil, apperrors.WithMessage(apperrors.ErrNullArgument, "transaction is required")
	}

	existing, err := s.store.Transactions.FindByID(updated.ID)
	if err != nil {
		return nil, storageError(err, apperrors.ErrTransactionNotFound)
	}

	if updated.CategoryID != nil && updated.Category == nil {
		category, err := s.store.Categories.FindByID(*updated.CategoryID)
		if err != nil {
			return nil, storageError(err, apperrors.ErrCategoryNotFound)
		}
		updated.Category = category
	}

	previous := existing.Money
	existing.ApplyEdit(updated)
	existing.Type = ledger.Classify(existing.Money)

	err = s.store.Atomic(func(store *repository.Store) error {
		if s.opts.ReconcileOnEdit {
			if delta := existing.Money.Sub(previous); !delta.IsZero() {
				wallet, err := store.Wallets.FindByID(existing.WalletID)
				if err != nil {
					return storageError(err, apperrors.ErrWalletNotFound)
				}
				wallet.Amount = wallet.Amount.Add(delta)
				if err := store.Wallets.Save(wallet); err != nil {
					return storageError(err, nil)
				}
			}
		}
		if err := store.Transactions.Save(existing); err != nil {
			return storageError(err, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.remember(existing)
	return existing, nil
}

// DeleteTransaction removes the transaction. The wallet balance is not
// reversed.
func (s *transactionService) DeleteTransaction(transactionID string) error {
	tx, err := s.store.Transactions.FindByID(transactionID)
	if err != nil {
		return storageError(err, apperrors.ErrTransactionNotFound)
	}
	if err := s.store.Transactions.Delete(tx); err != nil {
		return storageError(err, nil)
	}

	s.cache.Evict(transactionID)
	return nil
}

// CalculateTotalIncome sums the INCOME transactions of wallet.
func (s *transactionService) CalculateTotalIncome(wallet *models.Wallet) (decimal.Decimal, error) {
	txs, err := s.walletTransactions(wallet)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.TotalIncome(txs), nil
}

// CalculateTotalExpenses sums the EXPENSE transactions of wallet, reported
// as a positive magnitude.
func (s *transactionService) CalculateTotalExpenses(wallet *models.Wallet) (decimal.Decimal, error) {
	txs, err := s.walletTransactions(wallet)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.TotalExpenses(txs), nil
}

func (s *transactionService) walletTransactions(wallet *models.Wallet) ([]models.Transaction, error) {
	if wallet == nil {
		return nil, apperrors.WithMessage(apperrors.ErrNullArgument, "wallet is required")
	}
	txs, err := s.store.Transactions.FindByWalletID(wallet.ID)
	if err != nil {
		return nil, storageError(err, nil)
	}
	return txs, nil
}

// SearchTransactions returns the transactions matching the first populated
// criterion. A date search returns every transaction unless
// ApplySearchDateFilter is set, and likewise an amount search unless
// ApplySearchAmountFilter is set.
func (s *transactionService) SearchTransactions(criteria SearchCriteria) ([]models.Transaction, error) {
	var (
		txs []models.Transaction
		err error
	)

	switch {
	case criteria.CategoryID != nil:
		txs, err = s.store.Transactions.FindByCategoryID(*criteria.CategoryID)
	case criteria.Date != nil:
		start, end := ledger.DayBounds(*criteria.Date)
		if s.opts.ApplySearchDateFilter {
			txs, err = s.store.Transactions.FindByDateBetween(start, end)
		} else {
			logger.Get().Debugw("Date search returns all transactions", "from", start, "to", end)
			txs, err = s.store.Transactions.FindAll()
		}
	case criteria.Description != "":
		txs, err = s.store.Transactions.FindByDescription(criteria.Description)
	case criteria.Amount != nil:
		if s.opts.ApplySearchAmountFilter {
			txs, err = s.store.Transactions.FindByMoney(*criteria.Amount)
		} else {
			txs, err = s.store.Transactions.FindAll()
		}
	default:
		txs, err = s.store.Transactions.FindAll()
	}
	if err != nil {
		return nil, storageError(err, nil)
	}

	if criteria.WalletID == "" {
		return txs, nil
	}
	scoped := make([]models.Transaction, 0, len(txs))
	for i := range txs {
		if txs[i].WalletID == criteria.WalletID {
			scoped = append(scoped, txs[i])
		}
	}
	return scoped, nil
}

// ExportTransactions writes every transaction to the export file and returns
// it opened for reading.
func (s *transactionService) ExportTransactions() (*os.File, error) {
	txs, err := s.store.Transactions.FindAll()
	if err != nil {
		return nil, storageError(err, nil)
	}

	f, err := s.sink.Export(txs)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExportFailed, err)
	}

	logger.Get().Infow("Transactions exported", "path", s.sink.Path, "count", len(txs))
	return f, nil
}

// FindAllTransactions returns every transaction ordered by date.
func (s *transactionService) FindAllTransactions() ([]models.Transaction, error) {
	txs, err := s.store.Transactions.FindAll()
	if err != nil {
		return nil, storageError(err, nil)
	}
	return txs, nil
}

// FindTransactionByID returns the transaction, served from cache when possible.
// The category is never cached and is loaded on every lookup.
func (s *transactionService) FindTransactionByID(transactionID string) (*models.Transaction, error) {
	if transactionID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrNullArgument, "transaction id is required")
	}
	if cached, ok := s.cache.Get(transactionID); ok {
		if err := s.attachCategory(&cached); err != nil {
			return nil, err
		}
		return &cached, nil
	}

	logger.Get().Infow("Fetching transaction from DB", "transaction_id", transactionID)
	tx, err := s.store.Transactions.FindByID(transactionID)
	if err != nil {
		return nil, storageError(err, apperrors.ErrTransactionNotFound)
	}

	s.remember(tx)
	return tx, nil
}

// remember caches tx without its category.
func (s *transactionService) remember(tx *models.Transaction) {
	entry := *tx
	entry.Category = nil
	s.cache.Put(entry.ID, entry)
}

// attachCategory loads the category of a cached transaction. A category
// deleted since then leaves tx uncategorized, as the stored row is.
func (s *transactionService) attachCategory(tx *models.Transaction) error {
	tx.Category = nil
	if tx.CategoryID == nil {
		return nil
	}
	category, err := s.store.Categories.FindByID(*tx.CategoryID)
	if errors.Is(err, repository.ErrNotFound) {
		tx.CategoryID = nil
		return nil
	}
	if err != nil {
		return storageError(err, nil)
	}
	tx.Category = category
	return nil
}

// FindTransactionsByCategory returns the transactions labelled with categoryID.
func (s *transactionService) FindTransactionsByCategory(categoryID string) ([]models.Transaction, error) {
	txs, err := s.store.Transactions.FindByCategoryID(categoryID)
	if err != nil {
		return nil, storageError(err, nil)
	}
	return txs, nil
}

// FindTransactionsByDescription returns the transactions with the exact description.
func (s *transactionService) FindTransactionsByDescription(description string) ([]models.Transaction, error) {
	txs, err := s.store.Transactions.FindByDescription(description)
	if err != nil {
		return nil, storageError(err, nil)
	}
	return txs, nil
}
