package recommend

import (
	"errors"

	"marquee/internal/catalog"
)

var (
	// ErrInvalidInput reports an empty catalog, an unknown reference, or a
	// negative count. It matches services.ErrValidation under errors.Is.
	ErrInvalidInput = catalog.ErrInvalidInput
	// ErrStaleModel reports an attempt to rank a snapshot other than the one
	// the model was fit from.
	ErrStaleModel = errors.New("model was fit from a different catalog snapshot")
)
