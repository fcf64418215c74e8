package band

import (
	"errors"
	"fmt"
)

// ErrUnknownBand indicates a band identifier outside the closed band set.
var ErrUnknownBand = errors.New("unknown equalizer band")

// UnknownBandError carries the offending identifier so callers looping over
// externally supplied collections can report exactly which entry failed.
type UnknownBandError struct {
	Name string
}

func (e *UnknownBandError) Error() string {
	return fmt.Sprintf("unknown equalizer band %q", e.Name)
}

func (e *UnknownBandError) Is(target error) bool {
	return target == ErrUnknownBand
}
