package reporting

import "sync"

// Counter metric names for the equalizer bridge operations.
const (
	MetricSetBandLevels         = "SetBandLevels"
	MetricGetBandLevels         = "GetBandLevels"
	MetricLocalSetBandLevels    = "LocalSetBandLevels"
	MetricLocalAdjustBandLevels = "LocalAdjustBandLevels"
	MetricLocalResetBands       = "LocalResetBands"
)

// Counters is a fire-and-forget counter registry keyed by operation name.
// All methods are safe for concurrent use.
type Counters struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewCounters creates an empty counter registry.
func NewCounters() *Counters {
	return &Counters{
		counts: make(map[string]int64),
	}
}

// Inc increments the named counter by one.
func (c *Counters) Inc(name string) {
	c.mu.Lock()
	c.counts[name]++
	c.mu.Unlock()
}

// Get returns the current value of the named counter.
func (c *Counters) Get(name string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[name]
}

// Snapshot returns a copy of every counter.
func (c *Counters) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
