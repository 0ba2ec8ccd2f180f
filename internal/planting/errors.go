package planting

import "errors"

var (
	// ErrInfeasible means the length and interval do not produce a
	// positive whole number of items under the mode.
	ErrInfeasible = errors.New("infeasible spacing")

	// ErrInvalidParameter means an input is out of range or unknown.
	ErrInvalidParameter = errors.New("invalid parameter")
)
