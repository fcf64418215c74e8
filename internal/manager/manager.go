package manager

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"eqbridge/pkg/logging"
)

const subsystem = "EqualizerManager"

// Common errors for manager construction.
var (
	ErrNilConfiguration = errors.New("manager configuration is nil")
	ErrNilStorage       = errors.New("manager storage is nil")
)

// Mode marks an equalizer sound mode on the manager wire. Mode control is
// disabled, so ModeNone is the only value in circulation.
type Mode string

// ModeNone indicates no active equalizer mode.
const ModeNone Mode = "NONE"

// State is the manager's persistable snapshot: band identifiers mapped to
// levels, plus the active mode.
type State struct {
	Levels map[string]int
	Mode   Mode
}

// Configuration supplies the immutable level range and reset baseline.
type Configuration interface {
	MinBandLevel() int
	MaxBandLevel() int
	DefaultBandLevel() int
}

// Equalizer is the device-side implementation registered with the manager.
// The manager pushes authoritative band-level changes through it and may
// query the device's advertised range.
type Equalizer interface {
	SetEqualizerBandLevels(levels map[string]int)
	MinimumBandLevel() int
	MaximumBandLevel() int
}

// Storage persists manager state across restarts. LoadState seeds the
// manager at construction; SaveState is invoked after every mutation.
type Storage interface {
	SaveState(state State)
	LoadState() (State, error)
	Clear()
}

// Manager owns authoritative equalizer band-level state and dispatches
// change notifications to registered equalizers.
type Manager struct {
	cfg     Configuration
	storage Storage

	mu         sync.Mutex
	levels     map[string]int
	mode       Mode
	equalizers []Equalizer
}

// New creates a manager seeded from storage. The bands present in the
// loaded state define the set of bands the manager will accept mutations
// for.
func New(cfg Configuration, storage Storage) (*Manager, error) {
	if cfg == nil {
		return nil, ErrNilConfiguration
	}
	if storage == nil {
		return nil, ErrNilStorage
	}

	state, err := storage.LoadState()
	if err != nil {
		return nil, fmt.Errorf("seeding manager state: %w", err)
	}

	levels := make(map[string]int, len(state.Levels))
	for band, level := range state.Levels {
		levels[band] = level
	}
	mode := state.Mode
	if mode == "" {
		mode = ModeNone
	}

	logging.Debug(subsystem, "seeded state with %d bands", len(levels))
	return &Manager{
		cfg:     cfg,
		storage: storage,
		levels:  levels,
		mode:    mode,
	}, nil
}

// SetBandLevels stores the supplied absolute levels verbatim and broadcasts
// the change. Levels are NOT clamped here; callers pre-clamp before
// submitting because the state is exposed downstream as-is.
func (m *Manager) SetBandLevels(levels map[string]int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	changed := make(map[string]int, len(levels))
	for band, level := range levels {
		if _, known := m.levels[band]; !known {
			logging.Warn(subsystem, "ignoring set for unsupported band %s", band)
			continue
		}
		if m.levels[band] == level {
			continue
		}
		m.levels[band] = level
		changed[band] = level
	}
	m.commitLocked(changed)
}

// AdjustBandLevels applies relative deltas and clamps each adjusted level
// into the configured range before storing and broadcasting it.
func (m *Manager) AdjustBandLevels(deltas map[string]int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	changed := make(map[string]int, len(deltas))
	for band, delta := range deltas {
		current, known := m.levels[band]
		if !known {
			logging.Warn(subsystem, "ignoring adjustment for unsupported band %s", band)
			continue
		}
		adjusted := m.clamp(current + delta)
		if adjusted == current {
			continue
		}
		m.levels[band] = adjusted
		changed[band] = adjusted
	}
	m.commitLocked(changed)
}

// ResetBands returns the named bands to the configured baseline level.
func (m *Manager) ResetBands(bands []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	baseline := m.clamp(m.cfg.DefaultBandLevel())
	changed := make(map[string]int, len(bands))
	for _, band := range bands {
		current, known := m.levels[band]
		if !known {
			logging.Warn(subsystem, "ignoring reset for unsupported band %s", band)
			continue
		}
		if current == baseline {
			continue
		}
		m.levels[band] = baseline
		changed[band] = baseline
	}
	m.commitLocked(changed)
}

// RegisterEqualizer adds a device-side equalizer implementation as a
// broadcast target. Registration does not replay current state; the
// implementation seeded this state in the first place.
func (m *Manager) RegisterEqualizer(eq Equalizer) {
	if eq == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.equalizers = append(m.equalizers, eq)
}

// UnregisterEqualizer removes a previously registered equalizer. After it
// returns the manager will never call back into eq.
func (m *Manager) UnregisterEqualizer(eq Equalizer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.equalizers[:0]
	for _, registered := range m.equalizers {
		if registered != eq {
			kept = append(kept, registered)
		}
	}
	m.equalizers = kept
}

// BandLevels returns a copy of the current band-level state.
func (m *Manager) BandLevels() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.levels))
	for band, level := range m.levels {
		out[band] = level
	}
	return out
}

// SupportedBands returns the band identifiers the manager accepts, sorted.
func (m *Manager) SupportedBands() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	bands := make([]string, 0, len(m.levels))
	for band := range m.levels {
		bands = append(bands, band)
	}
	sort.Strings(bands)
	return bands
}

// MinimumBandLevel returns the lower bound of the configured range.
func (m *Manager) MinimumBandLevel() int {
	return m.cfg.MinBandLevel()
}

// MaximumBandLevel returns the upper bound of the configured range.
func (m *Manager) MaximumBandLevel() int {
	return m.cfg.MaxBandLevel()
}

// commitLocked persists the full state and broadcasts the changed subset to
// every registered equalizer. Caller holds m.mu, which is what serializes
// concurrent mutations system-wide.
func (m *Manager) commitLocked(changed map[string]int) {
	if len(changed) == 0 {
		return
	}

	snapshot := make(map[string]int, len(m.levels))
	for band, level := range m.levels {
		snapshot[band] = level
	}
	m.storage.SaveState(State{Levels: snapshot, Mode: m.mode})

	for _, eq := range m.equalizers {
		notify := make(map[string]int, len(changed))
		for band, level := range changed {
			notify[band] = level
		}
		eq.SetEqualizerBandLevels(notify)
	}
}

func (m *Manager) clamp(v int) int {
	if v < m.cfg.MinBandLevel() {
		return m.cfg.MinBandLevel()
	}
	if v > m.cfg.MaxBandLevel() {
		return m.cfg.MaxBandLevel()
	}
	return v
}
