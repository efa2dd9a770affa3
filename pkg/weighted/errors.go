package weighted

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when a selection is requested from a list with no
	// positive-weight entries.
	ErrEmpty = errors.New("weighted: no selectable entries")
	// ErrInvalidWeight is returned for negative, NaN or infinite weights.
	ErrInvalidWeight = errors.New("weighted: invalid weight")
	// ErrIndexOutOfRange is returned for indices outside the list.
	ErrIndexOutOfRange = errors.New("weighted: index out of range")
	// ErrInvalidCapacity is returned for negative capacities.
	ErrInvalidCapacity = errors.New("weighted: invalid capacity")
)

// errTotalOverflow is returned when a weight is finite on its own but would
// push the total weight of a list past the float64 range.
var errTotalOverflow = fmt.Errorf("%w: total weight overflows", ErrInvalidWeight)
