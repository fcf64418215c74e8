package bridge

import (
	"fmt"
	"sort"
	"sync"

	"eqbridge/internal/band"
	"eqbridge/internal/manager"
	"eqbridge/internal/reporting"
	"eqbridge/pkg/logging"
)

const subsystem = "EqualizerBridge"

// LifecycleState tracks where the bridge is in its own lifecycle. It says
// nothing about equalizer values.
type LifecycleState string

const (
	StateUninitialized LifecycleState = "Uninitialized"
	StateInitializing  LifecycleState = "Initializing"
	StateActive        LifecycleState = "Active"
	StateShuttingDown  LifecycleState = "ShuttingDown"
	StateShutdown      LifecycleState = "Shutdown"
)

// Bridge mediates between the platform audio endpoint and the equalizer
// manager. It holds shared references to both plus the capability agent,
// but owns no band-level data itself; state reads always hit the live
// platform.
type Bridge struct {
	platform PlatformEndpoint
	counters *reporting.Counters
	bus      *reporting.EventBus

	// mu guards the lifecycle references below, not band data. Band-level
	// mutations are serialized by the manager, not here.
	mu       sync.RWMutex
	state    LifecycleState
	settings *Settings
	manager  Manager
	agent    CapabilityAgent

	shutdownOnce sync.Once
}

// State returns the bridge's current lifecycle state.
func (b *Bridge) State() LifecycleState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// SetEqualizerBandLevels is invoked by the manager when it pushes an
// authoritative band-level change. The map is converted to the device band
// model and forwarded to the platform endpoint. No truncation happens here;
// the manager range-checks before dispatch. A malformed push must not crash
// the bridge: unknown entries are dropped and logged (or, in strict mode,
// the whole batch is dropped).
func (b *Bridge) SetEqualizerBandLevels(levels map[string]int) {
	b.count(reporting.MetricSetBandLevels)

	settings, platform := b.collaborators()
	if platform == nil {
		return
	}

	converted, err := band.ConvertMap(levels)
	if err != nil {
		logging.Error(subsystem, err, "dropping unknown bands in remote push")
		b.publish(reporting.NewEvent(reporting.EventTypeConversionDropped, subsystem, err.Error()))
		if settings != nil && settings.StrictConversion() {
			return
		}
	}
	if len(converted) == 0 {
		return
	}

	logging.Debug(subsystem, "applying remote band levels %s", band.Format(converted))
	b.publish(reporting.NewEvent(reporting.EventTypeRemoteSetBandLevels, subsystem, band.Format(converted)))
	if err := platform.SetBandLevels(converted); err != nil {
		logging.Error(subsystem, err, "platform rejected band levels")
	}
}

// MinimumBandLevel returns the configured lower bound.
func (b *Bridge) MinimumBandLevel() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.settings.MinBandLevel()
}

// MaximumBandLevel returns the configured upper bound.
func (b *Bridge) MaximumBandLevel() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.settings.MaxBandLevel()
}

// SaveState is a no-op. Persistent storage is intentionally unused; state
// is always loaded from the live platform instead.
func (b *Bridge) SaveState(state manager.State) {
}

// Clear is a no-op for the same reason SaveState is.
func (b *Bridge) Clear() {
}

// LoadState is invoked by the manager at its own startup to seed
// authoritative state from the device. Levels are read from the platform
// endpoint, clamped into the configured range, and returned with mode
// disabled. A platform that cannot be queried is a platform fault and
// propagates untouched.
func (b *Bridge) LoadState() (manager.State, error) {
	b.count(reporting.MetricGetBandLevels)

	settings, platform := b.collaborators()
	levels, err := platform.GetBandLevels()
	if err != nil {
		return manager.State{}, fmt.Errorf("reading platform band levels: %w", err)
	}
	logging.Debug(subsystem, "loaded platform band levels %s", band.Format(levels))
	b.publish(reporting.NewEvent(reporting.EventTypeLoadState, subsystem, band.Format(levels)))

	out := make(map[string]int, len(levels))
	for _, l := range levels {
		clamped := b.truncate(l, settings.Range())
		out[clamped.Band.String()] = clamped.Value
	}
	return manager.State{Levels: out, Mode: manager.ModeNone}, nil
}

// OnLocalSetBandLevels handles an absolute band-level change requested by
// the device itself. Local input is not trusted to be pre-clamped, and the
// manager's set operation stores levels verbatim, so clamping happens here,
// exactly once, before the canonical state is re-broadcast.
func (b *Bridge) OnLocalSetBandLevels(levels []band.Level) {
	b.count(reporting.MetricLocalSetBandLevels)

	settings, _ := b.collaborators()
	mgr := b.managerRef()
	if mgr == nil || settings == nil {
		return
	}

	logging.Debug(subsystem, "local set %s", band.Format(levels))
	b.publish(reporting.NewEvent(reporting.EventTypeLocalSetBandLevels, subsystem, band.Format(levels)))

	out := make(map[string]int, len(levels))
	for _, l := range levels {
		clamped := b.truncate(l, settings.Range())
		out[clamped.Band.String()] = clamped.Value
	}
	mgr.SetBandLevels(out)
}

// OnLocalAdjustBandLevels handles a relative adjustment request. Deltas are
// forwarded unclamped: the manager's adjust operation clamps internally,
// and clamping twice would risk divergent results.
func (b *Bridge) OnLocalAdjustBandLevels(deltas []band.Level) {
	b.count(reporting.MetricLocalAdjustBandLevels)

	mgr := b.managerRef()
	if mgr == nil {
		return
	}

	logging.Debug(subsystem, "local adjust %s", band.Format(deltas))
	b.publish(reporting.NewEvent(reporting.EventTypeLocalAdjustBandLevel, subsystem, band.Format(deltas)))

	out := make(map[string]int, len(deltas))
	for _, l := range deltas {
		out[l.Band.String()] = l.Value
	}
	mgr.AdjustBandLevels(out)
}

// OnLocalResetBands resets the given bands to the manager baseline. An
// empty input set means "reset everything": the full supported-band set is
// submitted, not no bands. Duplicates coalesce.
func (b *Bridge) OnLocalResetBands(bands []band.Band) {
	b.count(reporting.MetricLocalResetBands)

	settings, _ := b.collaborators()
	mgr := b.managerRef()
	if mgr == nil || settings == nil {
		return
	}

	if len(bands) == 0 {
		bands = settings.SupportedBands()
	}
	seen := make(map[band.Band]struct{}, len(bands))
	names := make([]string, 0, len(bands))
	for _, bd := range bands {
		if _, dup := seen[bd]; dup {
			continue
		}
		seen[bd] = struct{}{}
		names = append(names, bd.String())
	}
	sort.Strings(names)

	logging.Debug(subsystem, "local reset of %v", names)
	b.publish(reporting.NewEvent(reporting.EventTypeLocalResetBands, subsystem, fmt.Sprintf("%v", names)))
	mgr.ResetBands(names)
}

// TruncateBandLevel clamps a single band level into the configured range,
// emitting a warning diagnostic when clamping changed the value.
func (b *Bridge) TruncateBandLevel(l band.Level) band.Level {
	settings, _ := b.collaborators()
	if settings == nil {
		return l
	}
	return b.truncate(l, settings.Range())
}

func (b *Bridge) truncate(l band.Level, r band.Range) band.Level {
	clamped, changed := band.Truncate(l, r)
	if changed {
		logging.Warn(subsystem, "band %s level %d out of range, truncated to %d", l.Band, l.Value, clamped.Value)
		b.publish(reporting.NewEvent(reporting.EventTypeLevelTruncated, subsystem, l.Band.String()).
			WithAttr("band", l.Band.String()).
			WithAttr("value", fmt.Sprintf("%d", l.Value)).
			WithAttr("truncated", fmt.Sprintf("%d", clamped.Value)))
	}
	return clamped
}

func (b *Bridge) collaborators() (*Settings, PlatformEndpoint) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.settings, b.platform
}

func (b *Bridge) managerRef() Manager {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.manager
}

func (b *Bridge) count(name string) {
	if b.counters != nil {
		b.counters.Inc(name)
	}
}

func (b *Bridge) publish(event reporting.Event) {
	if b.bus != nil {
		b.bus.Publish(event)
	}
}
