package css

import (
	"errors"
	"fmt"
)

// Sentinel errors for selector construction.
var (
	// ErrDuplicateCategory is returned when type, id or pseudo-element is set twice.
	ErrDuplicateCategory = errors.New("duplicate selector category")

	// ErrOrderViolation is returned when a fragment is added after a fragment
	// of a later category.
	ErrOrderViolation = errors.New("selector fragments out of order")
)

// BuildError describes a failed fragment step.
type BuildError struct {
	Category Category // category of the rejected fragment
	Last     Category // last category accepted before the failure
	Value    string   // rejected fragment value
	Err      error    // ErrDuplicateCategory or ErrOrderViolation
}

func (e *BuildError) Error() string {
	if errors.Is(e.Err, ErrDuplicateCategory) {
		return fmt.Sprintf("%s %q: %s already set", e.Err, e.Value, e.Category)
	}
	return fmt.Sprintf("%s: %s %q cannot follow %s", e.Err, e.Category, e.Value, e.Last)
}

// Unwrap returns the sentinel error.
func (e *BuildError) Unwrap() error { return e.Err }

// IsDuplicate reports whether err is (or wraps) ErrDuplicateCategory.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateCategory)
}

// IsOrderViolation reports whether err is (or wraps) ErrOrderViolation.
func IsOrderViolation(err error) bool {
	return errors.Is(err, ErrOrderViolation)
}
