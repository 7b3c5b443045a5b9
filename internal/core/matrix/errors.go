package matrix

import (
	"errors"
	"fmt"
)

// Causes wrapped by ConfigurationError, match with errors.Is
var (
	ErrNoAxes             = errors.New("no axes declared")
	ErrEmptyAxis          = errors.New("axis has no variant values")
	ErrMissingVariants    = errors.New("axis has no variant declaration")
	ErrUndeclaredAxis     = errors.New("variants reference an undeclared axis")
	ErrDuplicateAxis      = errors.New("axis declared more than once")
	ErrBlankAxisName      = errors.New("axis name is empty")
	ErrDuplicateValue     = errors.New("variant value repeated within axis")
	ErrUnknownExcludeAxis = errors.New("exclude rule references an unknown axis")
	ErrNonPositiveBound   = errors.New("batch bound must be a positive integer")
	ErrSpaceTooLarge      = errors.New("configuration space does not fit in an int")
	ErrSpaceMismatch      = errors.New("exclude filter was built for a different axis space")
)

// ConfigurationError reports an invalid axis, variant, exclude or bound description
// it is only ever returned at construction time
type ConfigurationError struct {
	Op   string // constructor that rejected the input
	Axis string // offending axis, empty when not axis specific
	Err  error  // one of the Err* causes above
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Axis != "" {
		return fmt.Sprintf("matrix: %s: axis %q: %v", e.Op, e.Axis, e.Err)
	}
	return fmt.Sprintf("matrix: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the cause
func (e *ConfigurationError) Unwrap() error { return e.Err }

// IsConfigurationError reports whether err (or anything it wraps) is a ConfigurationError
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

func configErr(op, axis string, cause error) error {
	return &ConfigurationError{Op: op, Axis: axis, Err: cause}
}
