package catalog

import (
	"fmt"

	"marquee/internal/services"
)

// ErrInvalidInput marks requests that reference an empty catalog, an
// unknown item, or an out-of-range count.
var ErrInvalidInput = fmt.Errorf("invalid input: %w", services.ErrValidation)
