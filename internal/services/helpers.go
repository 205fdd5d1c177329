package services

import (
	"errors"

	apperrors "budgettracker/internal/errors"
	"budgettracker/internal/repository"
)

// storageError maps a repository failure onto the service error taxonomy.
// Missing rows become notFound; errors that are already typed pass through;
// anything else is a persistence failure.
func storageError(err error, notFound *apperrors.AppError) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if notFound != nil && errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return apperrors.Wrap(apperrors.ErrPersistence, err)
}
