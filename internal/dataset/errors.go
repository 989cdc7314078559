package dataset

import "errors"

// Standard dataset errors.
var (
	// ErrDataNotFound means the requested period/merchant combination is
	// absent and no default fallback exists.
	ErrDataNotFound = errors.New("dashboard data not found")

	// ErrInvalidDataset means the dataset violates its own contract, e.g. a
	// period without a "default" merchant entry. Raised at load time, never
	// during lookups.
	ErrInvalidDataset = errors.New("invalid dataset")
)
