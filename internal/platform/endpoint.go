package platform

import (
	"fmt"
	"sort"
	"sync"

	"eqbridge/internal/band"
	"eqbridge/internal/bridge"
	"eqbridge/pkg/logging"
)

const subsystem = "PlatformEndpoint"

// Endpoint is an in-memory equalizer device. Levels it is asked to apply
// are stored and can be read back; local user input is injected through the
// Local* methods and dispatched to the attached controller.
type Endpoint struct {
	mu         sync.Mutex
	levels     band.LevelMap
	applyErr   error
	controller bridge.LocalController
}

var _ bridge.PlatformEndpoint = (*Endpoint)(nil)

// NewEndpoint creates an endpoint with every given band at the initial
// level.
func NewEndpoint(bands []band.Band, initialLevel int) *Endpoint {
	levels := make(band.LevelMap, len(bands))
	for _, b := range bands {
		levels[b] = initialLevel
	}
	return &Endpoint{levels: levels}
}

// SetBandLevels applies the given levels. Bands the device does not carry
// are ignored, matching hardware that silently drops unknown channels.
func (e *Endpoint) SetBandLevels(levels []band.Level) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.applyErr != nil {
		return e.applyErr
	}
	for _, l := range levels {
		if _, ok := e.levels[l.Band]; !ok {
			logging.Warn(subsystem, "ignoring level for band %s not present on device", l.Band)
			continue
		}
		e.levels[l.Band] = l.Value
	}
	logging.Debug(subsystem, "applied %s", band.Format(levels))
	return nil
}

// GetBandLevels reports the currently applied levels in ascending band
// order.
func (e *Endpoint) GetBandLevels() ([]band.Level, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.applyErr != nil {
		return nil, e.applyErr
	}
	out := make([]band.Level, 0, len(e.levels))
	for b, v := range e.levels {
		out = append(out, band.Level{Band: b, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Band < out[j].Band })
	return out, nil
}

// SetController attaches the recipient of local equalizer input. Passing
// nil detaches it; subsequent local input is dropped.
func (e *Endpoint) SetController(c bridge.LocalController) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.controller = c
}

// FailWith makes every subsequent apply and read return err until called
// again with nil. Used to simulate a device fault.
func (e *Endpoint) FailWith(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applyErr = err
}

// LocalSetBandLevels injects an absolute level change as if a user turned
// the physical controls. Returns an error when no controller is attached.
func (e *Endpoint) LocalSetBandLevels(levels []band.Level) error {
	c, err := e.attachedController()
	if err != nil {
		return err
	}
	c.OnLocalSetBandLevels(levels)
	return nil
}

// LocalAdjustBandLevels injects a relative level change.
func (e *Endpoint) LocalAdjustBandLevels(deltas []band.Level) error {
	c, err := e.attachedController()
	if err != nil {
		return err
	}
	c.OnLocalAdjustBandLevels(deltas)
	return nil
}

// LocalResetBands injects a reset request. An empty band list requests a
// reset of every band.
func (e *Endpoint) LocalResetBands(bands []band.Band) error {
	c, err := e.attachedController()
	if err != nil {
		return err
	}
	c.OnLocalResetBands(bands)
	return nil
}

func (e *Endpoint) attachedController() (bridge.LocalController, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.controller == nil {
		return nil, fmt.Errorf("no controller attached")
	}
	return e.controller, nil
}
