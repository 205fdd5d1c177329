package services

import (
	"strings"

	"budgettracker/internal/cache"
	apperrors "budgettracker/internal/errors"
	"budgettracker/internal/logger"
	"budgettracker/internal/models"
	"budgettracker/internal/repository"
)

// categoryService handles category-related business logic.
type categoryService struct {
	store *repository.Store
	cache cache.Cache[models.Category]
}

// NewCategoryService creates a new CategoryServicer. A nil cache disables
// caching.
func NewCategoryService(store *repository.Store, c cache.Cache[models.Category]) CategoryServicer {
	if c == nil {
		c = cache.NewNoop[models.Category]()
	}
	return &categoryService{store: store, cache: c}
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if err := s.ensureNameFree(name); err != nil {
		return nil, err
	}

	category := &models.Category{Name: name}
	if err := s.store.Categories.Save(category); err != nil {
		return nil, storageError(err, nil)
	}
	return category, nil
}

// UpdateCategory renames the category with the given id.
func (s *categoryService) UpdateCategory(categoryID, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	category, err := s.load(categoryID)
	if err != nil {
		return nil, err
	}
	if category.Name != name {
		if err := s.ensureNameFree(name); err != nil {
			return nil, err
		}
	}

	category.Name = name
	if err := s.store.Categories.Save(category); err != nil {
		return nil, storageError(err, nil)
	}

	s.cache.Put(category.ID, *category)
	return category, nil
}

// RenameCategory renames the category currently called current.
func (s *categoryService) RenameCategory(current, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if current == "" || name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrNullArgument, "current and new category names are required")
	}
	if current != name {
		if err := s.ensureNameFree(name); err != nil {
			return nil, err
		}
	}

	if err := s.store.Categories.Rename(current, name); err != nil {
		return nil, storageError(err, apperrors.ErrCategoryNotFound)
	}

	category, err := s.store.Categories.FindByName(name)
	if err != nil {
		return nil, storageError(err, apperrors.ErrCategoryNotFound)
	}
	s.cache.Put(category.ID, *category)
	return category, nil
}

// DeleteCategory deletes the category with the given id.
func (s *categoryService) DeleteCategory(categoryID string) error {
	category, err := s.load(categoryID)
	if err != nil {
		return err
	}
	if err := s.store.Categories.Delete(category); err != nil {
		return storageError(err, nil)
	}

	s.cache.Evict(categoryID)
	return nil
}

// GetCategory returns the category, served from cache when possible.
func (s *categoryService) GetCategory(categoryID string) (*models.Category, error) {
	if categoryID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrNullArgument, "category id is required")
	}
	if cached, ok := s.cache.Get(categoryID); ok {
		return &cached, nil
	}

	category, err := s.load(categoryID)
	if err != nil {
		return nil, err
	}

	s.cache.Put(categoryID, *category)
	return category, nil
}

// GetCategoryByName retrieves a category by name
func (s *categoryService) GetCategoryByName(name string) (*models.Category, error) {
	category, err := s.store.Categories.FindByName(name)
	if err != nil {
		return nil, storageError(err, apperrors.ErrCategoryNotFound)
	}
	return category, nil
}

// GetAllCategories returns every category.
func (s *categoryService) GetAllCategories() ([]models.Category, error) {
	categories, err := s.store.Categories.FindAll()
	if err != nil {
		return nil, storageError(err, nil)
	}
	return categories, nil
}

func (s *categoryService) load(categoryID string) (*models.Category, error) {
	if categoryID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrNullArgument, "category id is required")
	}
	logger.Get().Infow("Fetching category from DB", "category_id", categoryID)
	category, err := s.store.Categories.FindByID(categoryID)
	if err != nil {
		return nil, storageError(err, apperrors.ErrCategoryNotFound)
	}
	return category, nil
}

func (s *categoryService) ensureNameFree(name string) error {
	_, err := s.store.Categories.FindByName(name)
	switch {
	case err == nil:
		return apperrors.ErrDuplicateCategory
	case err == repository.ErrNotFound:
		return nil
	default:
		return storageError(err, nil)
	}
}
