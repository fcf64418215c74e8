package bridge

import (
	"sync"

	"eqbridge/internal/band"
	"eqbridge/internal/manager"
)

// calls is a shared ordered call log used to assert teardown ordering.
type calls struct {
	mu  sync.Mutex
	log []string
}

func (c *calls) record(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = append(c.log, name)
}

func (c *calls) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.log))
	copy(out, c.log)
	return out
}

// mockPlatform is an in-memory PlatformEndpoint.
type mockPlatform struct {
	mu         sync.Mutex
	levels     []band.Level
	applied    [][]band.Level
	getErr     error
	setErr     error
	controller LocalController
	calls      *calls
}

func (p *mockPlatform) SetBandLevels(levels []band.Level) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.setErr != nil {
		return p.setErr
	}
	p.applied = append(p.applied, levels)
	return nil
}

func (p *mockPlatform) GetBandLevels() ([]band.Level, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.getErr != nil {
		return nil, p.getErr
	}
	return p.levels, nil
}

func (p *mockPlatform) SetController(c LocalController) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.controller = c
	if p.calls != nil {
		if c == nil {
			p.calls.record("platform.SetController(nil)")
		} else {
			p.calls.record("platform.SetController")
		}
	}
}

func (p *mockPlatform) appliedLevels() [][]band.Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.applied
}

func (p *mockPlatform) currentController() LocalController {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.controller
}

// mockManager records what the bridge forwards to the manager.
type mockManager struct {
	mu          sync.Mutex
	setCalls    []map[string]int
	adjustCalls []map[string]int
	resetCalls  [][]string
	registered  []manager.Equalizer
	calls       *calls
}

func (m *mockManager) SetBandLevels(levels map[string]int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls = append(m.setCalls, levels)
}

func (m *mockManager) AdjustBandLevels(deltas map[string]int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adjustCalls = append(m.adjustCalls, deltas)
}

func (m *mockManager) ResetBands(bands []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetCalls = append(m.resetCalls, bands)
}

func (m *mockManager) RegisterEqualizer(eq manager.Equalizer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registered = append(m.registered, eq)
}

func (m *mockManager) UnregisterEqualizer(eq manager.Equalizer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.registered[:0]
	for _, r := range m.registered {
		if r != eq {
			kept = append(kept, r)
		}
	}
	m.registered = kept
	if m.calls != nil {
		m.calls.record("manager.UnregisterEqualizer")
	}
}

// mockAgent is a CapabilityAgent counting shutdowns.
type mockAgent struct {
	mu        sync.Mutex
	shutdowns int
	calls     *calls
}

func (a *mockAgent) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shutdowns++
	if a.calls != nil {
		a.calls.record("agent.Shutdown")
	}
}

func (a *mockAgent) shutdownCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.shutdowns
}

// mockRegistrar accepts or rejects capability registrations.
type mockRegistrar struct {
	mu         sync.Mutex
	registered []CapabilityAgent
	err        error
}

func (r *mockRegistrar) RegisterCapability(agent CapabilityAgent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.registered = append(r.registered, agent)
	return nil
}
