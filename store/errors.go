package store

import "errors"

// ErrItemNotFound is returned when a sale references an item code that does
// not exist in the catalog. The whole sale is rolled back when it occurs.
var ErrItemNotFound = errors.New("item not found")
