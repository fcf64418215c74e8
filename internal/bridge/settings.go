package bridge

import (
	"fmt"

	"eqbridge/internal/band"
	"eqbridge/internal/config"
)

// Settings is the bridge's immutable view of the equalizer configuration:
// the band-level range, the reset baseline, and the supported-band set.
// Built once at bridge construction and read-only afterwards, so it may be
// shared across goroutines without locking.
type Settings struct {
	rng          band.Range
	defaultLevel int
	supported    []band.Band
	strict       bool
}

// NewSettings validates the static equalizer configuration section. Missing
// or contradictory keys fail construction; the bridge cannot exist without a
// valid range.
func NewSettings(cfg config.EqualizerConfig) (*Settings, error) {
	if cfg.MinLevel == nil || cfg.MaxLevel == nil {
		return nil, fmt.Errorf("%w: minLevel and maxLevel are required", ErrInvalidConfiguration)
	}
	rng := band.Range{Min: *cfg.MinLevel, Max: *cfg.MaxLevel}
	if rng.Min > rng.Max {
		return nil, fmt.Errorf("%w: minLevel %d exceeds maxLevel %d", ErrInvalidConfiguration, rng.Min, rng.Max)
	}

	if len(cfg.Bands) == 0 {
		return nil, fmt.Errorf("%w: no supported bands configured", ErrInvalidConfiguration)
	}
	seen := make(map[band.Band]struct{}, len(cfg.Bands))
	supported := make([]band.Band, 0, len(cfg.Bands))
	for _, name := range cfg.Bands {
		b, err := band.ParseBand(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
		if _, dup := seen[b]; dup {
			continue
		}
		seen[b] = struct{}{}
		supported = append(supported, b)
	}

	defaultLevel := 0
	if cfg.DefaultLevel != nil {
		defaultLevel = *cfg.DefaultLevel
	}
	if !rng.Contains(defaultLevel) {
		return nil, fmt.Errorf("%w: defaultLevel %d outside range [%d, %d]", ErrInvalidConfiguration, defaultLevel, rng.Min, rng.Max)
	}

	return &Settings{
		rng:          rng,
		defaultLevel: defaultLevel,
		supported:    supported,
		strict:       cfg.StrictConversion,
	}, nil
}

// Range returns the configured band-level range.
func (s *Settings) Range() band.Range { return s.rng }

// MinBandLevel returns the lower bound of the range.
func (s *Settings) MinBandLevel() int { return s.rng.Min }

// MaxBandLevel returns the upper bound of the range.
func (s *Settings) MaxBandLevel() int { return s.rng.Max }

// DefaultBandLevel returns the baseline a reset returns bands to.
func (s *Settings) DefaultBandLevel() int { return s.defaultLevel }

// SupportedBands returns a copy of the supported-band set in configuration
// order.
func (s *Settings) SupportedBands() []band.Band {
	out := make([]band.Band, len(s.supported))
	copy(out, s.supported)
	return out
}

// StrictConversion reports whether a remote push carrying any unknown band
// identifier drops the whole batch instead of only the offending entries.
func (s *Settings) StrictConversion() bool { return s.strict }
