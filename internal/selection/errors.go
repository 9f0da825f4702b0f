package selection

import (
	"errors"
	"fmt"

	"selectsync/internal/domain"
)

// ErrLookup matches every LookupError with errors.Is
var ErrLookup = errors.New("selected value does not exist in the provided candidates")

// LookupError is returned when a selected value has no matching candidate.
// Selections must always be a subset of the candidates.
type LookupError struct {
	Value domain.ID
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("selected value '%s' does not exist in the provided candidates", e.Value)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}
