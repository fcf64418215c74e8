package band

import (
	"errors"
	"sort"
	"strings"
)

// Convert maps one externally supplied (identifier, level) pair into the
// internal representation. The numeric value is carried over unchanged;
// unrecognized identifiers fail with an UnknownBandError.
func Convert(name string, value int) (Level, error) {
	b, err := ParseBand(name)
	if err != nil {
		return Level{}, err
	}
	return Level{Band: b, Value: value}, nil
}

// ConvertMap converts every entry of an externally supplied map. Entries are
// processed in ascending identifier order so the output is deterministic for
// logs and metrics. Entries with unknown identifiers are dropped; the
// remaining entries are still returned alongside the joined conversion
// errors.
func ConvertMap(ext map[string]int) ([]Level, error) {
	names := make([]string, 0, len(ext))
	for name := range ext {
		names = append(names, name)
	}
	sort.Strings(names)

	levels := make([]Level, 0, len(ext))
	var errs []error
	for _, name := range names {
		level, err := Convert(name, ext[name])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		levels = append(levels, level)
	}
	return levels, errors.Join(errs...)
}

// Truncate clamps the level into the range. The returned bool reports
// whether clamping changed the value; callers treat that as a warning-level
// observation, never an error.
func Truncate(l Level, r Range) (Level, bool) {
	clamped := r.Clamp(l.Value)
	if clamped == l.Value {
		return l, false
	}
	return Level{Band: l.Band, Value: clamped}, true
}

// ConvertAndTruncate converts every entry of an externally supplied map and
// clamps each level into the range, building a LevelMap. Duplicate bands in
// the input overwrite earlier entries. Unknown identifiers are dropped and
// reported via the joined error.
func ConvertAndTruncate(ext map[string]int, r Range) (LevelMap, error) {
	levels, err := ConvertMap(ext)
	out := make(LevelMap, len(levels))
	for _, l := range levels {
		clamped, _ := Truncate(l, r)
		out[clamped.Band] = clamped.Value
	}
	return out, err
}

// Format renders a level sequence for diagnostic logs.
func Format(levels []Level) string {
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = l.String()
	}
	return strings.Join(parts, ",")
}
