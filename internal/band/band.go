package band

import "fmt"

// Band identifies a frequency band whose gain can be controlled
// independently. The set is closed; every Band value is usable as a map key
// and orders naturally by its numeric value.
type Band int

const (
	Bass Band = iota
	Mid
	Treble
)

// bandNames maps each known band onto its canonical identifier. The same
// identifiers appear in configuration files and on the manager wire.
var bandNames = map[Band]string{
	Bass:   "BASS",
	Mid:    "MID",
	Treble: "TREBLE",
}

// String returns the canonical identifier for the band.
func (b Band) String() string {
	if name, ok := bandNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Band(%d)", int(b))
}

// ParseBand resolves a band identifier into a Band. Identifiers outside the
// closed set produce an UnknownBandError.
func ParseBand(name string) (Band, error) {
	for b, n := range bandNames {
		if n == name {
			return b, nil
		}
	}
	return 0, &UnknownBandError{Name: name}
}

// Bands returns every known band in ascending order.
func Bands() []Band {
	return []Band{Bass, Mid, Treble}
}

// Level is a single (band, gain) pair. The gain unit is implementation
// defined; the software endpoint and the manager both use tenths of a
// decibel.
type Level struct {
	Band  Band
	Value int
}

// String renders the pair for diagnostic logs.
func (l Level) String() string {
	return fmt.Sprintf("%s:%d", l.Band, l.Value)
}

// LevelMap maps bands onto gain values, one entry per band.
type LevelMap map[Band]int

// Range is the immutable [Min, Max] gain range loaded from configuration.
type Range struct {
	Min int
	Max int
}

// Clamp forces v into the range, replacing out-of-range values with the
// nearest bound.
func (r Range) Clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Mode marks an equalizer sound mode. Mode control is disabled in this
// deployment, so ModeNone is the only value ever produced; the field exists
// to satisfy the manager's state contract.
type Mode string

// ModeNone indicates no active equalizer mode.
const ModeNone Mode = "NONE"

// State is a point-in-time equalizer snapshot exchanged with the manager.
type State struct {
	Levels LevelMap
	Mode   Mode
}
