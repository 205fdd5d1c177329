package models

import (
	"github.com/shopspring/decimal"
)

// Wallet holds a user's running balance, currency and budget ceiling.
type Wallet struct {
	Base
	UserID      string          `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Name        string          `gorm:"not null" json:"name"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"amount"`
	Currency    Currency        `gorm:"size:3;not null;default:'CZK'" json:"currency"`
	BudgetLimit decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"budget_limit"`

	// Relationships. Never preloaded implicitly; repositories fetch them
	// with explicit finder calls.
	Goals        []Goal        `gorm:"foreignKey:WalletID" json:"goals,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:WalletID" json:"transactions,omitempty"`
}

// AddGoal attaches goal to the wallet and sets its back-reference.
func (w *Wallet) AddGoal(goal *Goal) {
	walletID := w.ID
	goal.WalletID = &walletID
	w.Goals = append(w.Goals, *goal)
}

// RemoveGoal detaches goal from the wallet and clears its back-reference.
func (w *Wallet) RemoveGoal(goal *Goal) {
	for i := range w.Goals {
		if w.Goals[i].ID == goal.ID {
			w.Goals = append(w.Goals[:i], w.Goals[i+1:]...)
			break
		}
	}
	goal.WalletID = nil
}
