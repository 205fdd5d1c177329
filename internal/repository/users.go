package repository

import (
	"strings"

	"budgettracker/internal/models"
)

// UserRepository persists users.
type UserRepository struct {
	crud[models.User]
}

// FindByEmail loads the user with the given email, compared case-insensitively.
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// ExistsByEmail reports whether a user with email is already registered.
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("email = ?", strings.ToLower(email)).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
