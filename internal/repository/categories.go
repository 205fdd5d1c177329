package repository

import (
	"gorm.io/gorm"

	"budgettracker/internal/models"
)

// CategoryRepository persists categories.
type CategoryRepository struct {
	crud[models.Category]
}

// FindByName loads the category with the given name.
func (r *CategoryRepository) FindByName(name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("name = ?", name).First(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// Rename changes the name of the category currently called current.
func (r *CategoryRepository) Rename(current, name string) error {
	res := r.db.Model(&models.Category{}).Where("name = ?", current).Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the category row permanently so its name can be reused.
// Transactions labelled with it keep existing with a null category.
func (r *CategoryRepository) Delete(category *models.Category) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Transaction{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(category).Error
	})
}
