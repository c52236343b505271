// Package store provides the GORM/Postgres implementations of the service
// store interfaces.
package store

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"campus_tracker/internal/services"
)

// translate maps driver-level failures onto the service error taxonomy.
// Unknown records become ErrNotFound, unique violations ErrDuplicateEmail
// (the only unique text column shared across entities is email; bus numbers
// are pre-checked by the service), everything else ErrStoreUnavailable.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return services.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return services.ErrDuplicateEmail
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return services.ErrDuplicateEmail
	}
	return fmt.Errorf("%w: %v", services.ErrStoreUnavailable, err)
}
