package repository

import (
	"strings"

	"budgettracker/internal/models"
)

// WalletRepository persists wallets.
type WalletRepository struct {
	crud[models.Wallet]
}

// FindByUserID loads the wallet owned by userID.
func (r *WalletRepository) FindByUserID(userID string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, translate(err)
	}
	return &wallet, nil
}

// FindByUserEmail loads the wallet owned by the user with the given email.
func (r *WalletRepository) FindByUserEmail(email string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.
		Joins("JOIN users ON users.id = wallets.user_id AND users.deleted_at IS NULL").
		Where("users.email = ?", strings.ToLower(email)).
		First(&wallet).Error
	if err != nil {
		return nil, translate(err)
	}
	return &wallet, nil
}
