package models

import "github.com/shopspring/decimal"

// Goal is a named savings target attached to a wallet.
type Goal struct {
	Base
	WalletID  *string         `gorm:"type:uuid;index" json:"wallet_id,omitempty"`
	Goal      string          `json:"goal"`
	MoneyGoal decimal.Decimal `gorm:"type:decimal(20,4)" json:"money_goal"`
}
