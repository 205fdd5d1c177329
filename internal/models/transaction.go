package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction by the sign of its money.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is one signed monetary movement against a wallet.
type Transaction struct {
	Base
	WalletID    string          `gorm:"type:uuid;not null;index" json:"wallet_id"`
	CategoryID  *string         `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Description string          `gorm:"not null" json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Money       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"money"`
	Type        TransactionType `gorm:"size:16" json:"type"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
}

// ApplyEdit copies the editable fields of updated onto t. Empty description,
// nil category, unset type and zero date leave the current value in place.
func (t *Transaction) ApplyEdit(updated *Transaction) {
	if updated.Description != "" {
		t.Description = updated.Description
	}
	if updated.CategoryID != nil {
		t.CategoryID = updated.CategoryID
		t.Category = updated.Category
	}
	t.Money = updated.Money
	if updated.Type != "" {
		t.Type = updated.Type
	}
	if !updated.Date.IsZero() {
		t.Date = updated.Date
	}
}
