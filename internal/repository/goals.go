package repository

import (
	"budgettracker/internal/models"
)

// GoalRepository persists savings goals.
type GoalRepository struct {
	crud[models.Goal]
}

// FindByWalletID loads the goals attached to walletID.
func (r *GoalRepository) FindByWalletID(walletID string) ([]models.Goal, error) {
	var goals []models.Goal
	if err := r.db.Where("wallet_id = ?", walletID).Order("created_at ASC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

// DeleteByWalletID removes every goal attached to walletID.
func (r *GoalRepository) DeleteByWalletID(walletID string) error {
	return r.db.Where("wallet_id = ?", walletID).Delete(&models.Goal{}).Error
}
