// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"loomline/internal/models"

	"gorm.io/gorm"
)

// translateError maps gorm and driver errors onto the application error kinds.
// Errors that are already AppErrors pass through unchanged.
func translateError(err error, resource string, key string) error {
	if err == nil {
		return nil
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.NewNotFoundError(resource, key)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.NewConflictError(resource + " already exists")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return models.NewTransientError(err)
	default:
		return models.NewTransientError(err)
	}
}
