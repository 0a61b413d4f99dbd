package constraint

import "errors"

var (
	// ErrAssignmentMissing is returned when a concrete value is requested
	// for a variable that was allocated without one (setup-only execution,
	// or a value provider that failed).
	ErrAssignmentMissing = errors.New("variable assignment is missing")

	// ErrMatricesNotConstructed is returned by operations that need full
	// linear-combination data from a system built in counting mode.
	ErrMatricesNotConstructed = errors.New("constraint system does not construct matrices")
)
