package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperr "gigboard/internal/errors"
)

// translate maps gorm errors onto the application error kinds.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.ErrConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}
}
