package bridge

import (
	"eqbridge/internal/band"
	"eqbridge/internal/manager"
)

// PlatformEndpoint is the device-local component that applies band levels to
// audio hardware and reports current levels. Set and Get may fail with a
// platform fault; the bridge never retries, the error propagates or is
// logged depending on whether the calling contract has a return channel.
type PlatformEndpoint interface {
	// SetBandLevels applies the given gains to hardware.
	SetBandLevels(levels []band.Level) error

	// GetBandLevels reports the gains currently applied.
	GetBandLevels() ([]band.Level, error)

	// SetController registers the recipient of local set/adjust/reset
	// events. Passing nil detaches the current recipient.
	SetController(c LocalController)
}

// LocalController receives device-originated equalizer change requests,
// e.g. from a physical knob or local UI. The bridge implements it.
type LocalController interface {
	OnLocalSetBandLevels(levels []band.Level)
	OnLocalAdjustBandLevels(deltas []band.Level)
	OnLocalResetBands(bands []band.Band)
}

// Manager is the narrow contract the bridge consumes from the equalizer
// manager. *manager.Manager satisfies it.
type Manager interface {
	SetBandLevels(levels map[string]int)
	AdjustBandLevels(deltas map[string]int)
	ResetBands(bands []string)
	RegisterEqualizer(eq manager.Equalizer)
	UnregisterEqualizer(eq manager.Equalizer)
}

// CapabilityAgent is the opaque handle to the component exposing equalizer
// control over the capability interface. The bridge's only contract with it
// is construct once, register once, shut down once.
type CapabilityAgent interface {
	Shutdown()
}

// Registrar registers a capability agent at the default endpoint.
type Registrar interface {
	RegisterCapability(agent CapabilityAgent) error
}

// AgentFactory constructs the capability agent for a freshly created
// manager. Injected so construction failures can be exercised and so this
// package does not depend on the agent's transport.
type AgentFactory func(mgr *manager.Manager) (CapabilityAgent, error)

var (
	_ Manager             = (*manager.Manager)(nil)
	_ manager.Equalizer   = (*Bridge)(nil)
	_ manager.Storage     = (*Bridge)(nil)
	_ LocalController     = (*Bridge)(nil)
	_ manager.Configuration = (*Settings)(nil)
)
