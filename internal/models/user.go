package models

// User represents an account holder. Every user owns exactly one wallet.
type User struct {
	Base
	Email    string  `gorm:"uniqueIndex;not null" json:"email"`
	Username string  `gorm:"not null" json:"username"`
	Password string  `gorm:"not null" json:"-"`
	Wallet   *Wallet `gorm:"foreignKey:UserID" json:"wallet,omitempty"`
}
