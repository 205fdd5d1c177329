package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"budgettracker/internal/models"
	"budgettracker/internal/pagination"
)

// TransactionRepository persists transactions. Finders preload the category
// so callers can render its name without another round trip.
type TransactionRepository struct {
	crud[models.Transaction]
}

// FindByID loads a transaction together with its category.
func (r *TransactionRepository) FindByID(id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Preload("Category").Where("id = ?", id).First(&tx).Error; err != nil {
		return nil, translate(err)
	}
	return &tx, nil
}

// FindAll loads every transaction ordered by date.
func (r *TransactionRepository) FindAll() ([]models.Transaction, error) {
	return r.find("")
}

// FindByWalletID loads the transactions booked against walletID.
func (r *TransactionRepository) FindByWalletID(walletID string) ([]models.Transaction, error) {
	return r.find("wallet_id = ?", walletID)
}

// FindByCategoryID loads the transactions labelled with categoryID.
func (r *TransactionRepository) FindByCategoryID(categoryID string) ([]models.Transaction, error) {
	return r.find("category_id = ?", categoryID)
}

// FindByDescription loads the transactions whose description equals description.
func (r *TransactionRepository) FindByDescription(description string) ([]models.Transaction, error) {
	return r.find("description = ?", description)
}

// FindByMoney loads the transactions with exactly the given money value.
func (r *TransactionRepository) FindByMoney(money decimal.Decimal) ([]models.Transaction, error) {
	return r.find("money = ?", money)
}

// FindByDateBetween loads the transactions dated within [start, end].
func (r *TransactionRepository) FindByDateBetween(start, end time.Time) ([]models.Transaction, error) {
	return r.find("date >= ? AND date <= ?", start, end)
}

// PageByWalletID loads one page of a wallet's transactions in the requested
// date order together with the wallet's total transaction count.
func (r *TransactionRepository) PageByWalletID(walletID string, page pagination.PageRequest) ([]models.Transaction, int64, error) {
	base := r.db.Model(&models.Transaction{}).Where("wallet_id = ?", walletID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txs []models.Transaction
	if err := base.Preload("Category").
		Scopes(pagination.Chronological(page, "date"), pagination.Paginate(page)).
		Find(&txs).Error; err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

func (r *TransactionRepository) find(query string, args ...interface{}) ([]models.Transaction, error) {
	q := r.db.Preload("Category")
	if query != "" {
		q = q.Where(query, args...)
	}
	var txs []models.Transaction
	if err := q.Order("date ASC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}
