package bridge

import (
	"fmt"

	"eqbridge/internal/config"
	"eqbridge/internal/manager"
	"eqbridge/internal/reporting"
	"eqbridge/pkg/logging"
)

// Deps carries the collaborators Initialize wires the bridge into.
type Deps struct {
	Registrar    Registrar
	AgentFactory AgentFactory

	// Optional diagnostics. A nil bus or counter registry disables the
	// corresponding side channel.
	Bus      *reporting.EventBus
	Counters *reporting.Counters
}

// New is construction phase one: it builds the bridge in isolation. The
// only way it can fail is a nil platform endpoint. The returned bridge is
// not usable until Initialize succeeds.
func New(platform PlatformEndpoint) (*Bridge, error) {
	if platform == nil {
		return nil, ErrNilPlatformEndpoint
	}
	return &Bridge{
		platform: platform,
		state:    StateUninitialized,
	}, nil
}

// Initialize is construction phase two: configuration loading and
// cross-component registration, in strict order. Settings are built from
// the static configuration, the manager is created (seeding its state from
// this bridge, which reads the live platform), the capability agent is
// created and registered at the default endpoint, and finally the bridge is
// registered with the manager as its equalizer implementation.
//
// Any failure leaves the bridge partially wired; callers must tear it down
// with Shutdown. Create does exactly that.
func (b *Bridge) Initialize(cfg config.EqualizerConfig, deps Deps) error {
	if deps.Registrar == nil {
		return ErrNilRegistrar
	}
	if deps.AgentFactory == nil {
		return ErrNilAgentFactory
	}

	b.mu.Lock()
	b.state = StateInitializing
	b.counters = deps.Counters
	b.bus = deps.Bus
	b.mu.Unlock()
	b.publish(reporting.NewEvent(reporting.EventTypeBridgeInitializing, subsystem, ""))

	settings, err := NewSettings(cfg)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.settings = settings
	b.mu.Unlock()

	mgr, err := manager.New(settings, b)
	if err != nil {
		return fmt.Errorf("creating equalizer manager: %w", err)
	}
	b.mu.Lock()
	b.manager = mgr
	b.mu.Unlock()

	agent, err := deps.AgentFactory(mgr)
	if err != nil {
		return fmt.Errorf("creating capability agent: %w", err)
	}
	b.mu.Lock()
	b.agent = agent
	b.mu.Unlock()

	if err := deps.Registrar.RegisterCapability(agent); err != nil {
		return fmt.Errorf("registering capability agent: %w", err)
	}

	mgr.RegisterEqualizer(b)

	b.mu.Lock()
	b.state = StateActive
	b.mu.Unlock()
	b.publish(reporting.NewEvent(reporting.EventTypeBridgeActive, subsystem, ""))
	return nil
}

// Create runs both construction phases and attaches the bridge as the
// platform's local event target. On any failure whatever was partially
// constructed is shut down and no instance is returned; a half-initialized
// bridge never escapes to callers.
func Create(platform PlatformEndpoint, cfg config.EqualizerConfig, deps Deps) (*Bridge, error) {
	b, err := New(platform)
	if err != nil {
		logging.Error(subsystem, err, "bridge construction failed")
		return nil, err
	}
	if err := b.Initialize(cfg, deps); err != nil {
		logging.Error(subsystem, err, "bridge initialization failed")
		b.Shutdown()
		return nil, err
	}
	platform.SetController(b)
	logging.Info(subsystem, "equalizer bridge active")
	return b, nil
}

// Shutdown tears registrations down at most once, in strict order: the
// platform callback target is cleared first so no local events arrive
// mid-teardown, then the bridge unregisters from the manager so the manager
// stops calling back in, and only then is the capability agent (which
// depends on the manager) shut down. Safe to call repeatedly and safe to
// call on a partially initialized bridge.
func (b *Bridge) Shutdown() {
	b.shutdownOnce.Do(func() {
		b.mu.Lock()
		b.state = StateShuttingDown
		mgr := b.manager
		agent := b.agent
		b.manager = nil
		b.agent = nil
		platform := b.platform
		b.mu.Unlock()

		b.publish(reporting.NewEvent(reporting.EventTypeBridgeShutdown, subsystem, ""))

		if platform != nil {
			platform.SetController(nil)
		}
		if mgr != nil {
			mgr.UnregisterEqualizer(b)
		}
		if agent != nil {
			agent.Shutdown()
		}

		b.mu.Lock()
		b.state = StateShutdown
		b.mu.Unlock()
		logging.Info(subsystem, "equalizer bridge shut down")
	})
}
