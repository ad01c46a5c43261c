package wgeom

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter indicates a violated structural precondition, e.g.
	// port lists of different length or a missing coupler corner.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInfeasible indicates individually valid inputs which cannot be met
	// together, e.g. a target length outside the reachable range.
	ErrInfeasible = errors.New("infeasible geometry")
)

// Invalid wraps ErrInvalidParameter with the offending parameter's name
// and what was expected of it.
func Invalid(param string, format string, args ...any) error {
	tracer().Errorf("invalid %s: "+format, append([]any{param}, args...)...)
	return fmt.Errorf("%w: %s: %s", ErrInvalidParameter, param, fmt.Sprintf(format, args...))
}

// Infeasible wraps ErrInfeasible with a description of the unmet constraint.
func Infeasible(format string, args ...any) error {
	tracer().Errorf("infeasible: "+format, args...)
	return fmt.Errorf("%w: %s", ErrInfeasible, fmt.Sprintf(format, args...))
}
