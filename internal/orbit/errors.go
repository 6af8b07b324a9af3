package orbit

import "errors"

// Domain errors for cluster operations.
var (
	// ErrBodyNotFound indicates a lookup by id matched no live body.
	ErrBodyNotFound = errors.New("orbit: body not found")

	// ErrIndexOutOfRange indicates an attribute or preference index beyond
	// the cluster's trait dimension.
	ErrIndexOutOfRange = errors.New("orbit: trait index out of range")

	// ErrDimensionMismatch indicates bodies with differing trait vector
	// lengths; compatibility math is only valid on a shared dimension.
	ErrDimensionMismatch = errors.New("orbit: trait dimensions differ across bodies")

	// ErrInvalidConfig indicates a simulation parameter outside its valid range.
	ErrInvalidConfig = errors.New("orbit: invalid simulation config")
)
