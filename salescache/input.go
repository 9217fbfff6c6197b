package salescache

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/quickserve/go-sales-cache/store"
)

// ErrInvalidSale wraps sale-line validation failures so transports can map
// them to a client error.
var ErrInvalidSale = errors.New("invalid sale")

// ErrSeedingDisabled is returned by Reseed when no seeder was wired in.
var ErrSeedingDisabled = errors.New("seeding disabled")

// validateSale rejects empty batches and malformed lines before anything
// touches the store.
func validateSale(lines []store.SaleLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: at least one sale line required", ErrInvalidSale)
	}
	for i, line := range lines {
		err := validation.ValidateStruct(&line,
			validation.Field(&line.ItemCode, validation.Required),
			validation.Field(&line.Quantity, validation.Required, validation.Min(1)),
		)
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrInvalidSale, i, err)
		}
	}
	return nil
}
