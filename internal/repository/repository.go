// Package repository is the persistence gateway. Each repository is a thin
// gorm wrapper exposing id lookups, full scans, saves, deletes and the
// field-scoped finders the services need. Missing rows are reported as
// ErrNotFound; every other failure is returned unchanged.
package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"budgettracker/internal/models"
)

// ErrNotFound is returned when an id or field lookup matches no row.
var ErrNotFound = errors.New("record not found")

// crud implements the generic operations shared by all repositories.
type crud[T any] struct {
	db *gorm.DB
}

// FindByID loads the row with the given primary key.
func (r crud[T]) FindByID(id string) (*T, error) {
	var entity T
	if err := r.db.Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, translate(err)
	}
	return &entity, nil
}

// FindAll loads every row of the table.
func (r crud[T]) FindAll() ([]T, error) {
	var entities []T
	if err := r.db.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Save inserts or updates entity. Associations are never written implicitly.
func (r crud[T]) Save(entity *T) error {
	return r.db.Omit(clause.Associations).Save(entity).Error
}

// Delete removes entity.
func (r crud[T]) Delete(entity *T) error {
	return r.db.Delete(entity).Error
}

// Count returns the number of rows in the table.
func (r crud[T]) Count() (int64, error) {
	var count int64
	var model T
	if err := r.db.Model(&model).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Store bundles the repositories that share one database handle.
type Store struct {
	db *gorm.DB

	Users        *UserRepository
	Wallets      *WalletRepository
	Transactions *TransactionRepository
	Categories   *CategoryRepository
	Goals        *GoalRepository
}

// NewStore creates repositories bound to db.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:           db,
		Users:        &UserRepository{crud[models.User]{db}},
		Wallets:      &WalletRepository{crud[models.Wallet]{db}},
		Transactions: &TransactionRepository{crud[models.Transaction]{db}},
		Categories:   &CategoryRepository{crud[models.Category]{db}},
		Goals:        &GoalRepository{crud[models.Goal]{db}},
	}
}

// Atomic runs fn inside a database transaction. The Store passed to fn is
// bound to that transaction; returning an error rolls everything back.
func (s *Store) Atomic(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// DB returns the underlying handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}
