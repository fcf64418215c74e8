package config

// Config is the top-level configuration structure for eqbridge.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Equalizer  EqualizerConfig  `yaml:"equalizer"`
	Capability CapabilityConfig `yaml:"capability"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "debug", "info", "warn", "error"
}

// EqualizerConfig is the static equalizer section read once at bridge
// construction. MinLevel and MaxLevel bound every band gain the system will
// accept; Bands lists the supported band identifiers.
//
// MinLevel/MaxLevel/DefaultLevel are pointers so an absent key can be told
// apart from an explicit zero when the section is validated.
type EqualizerConfig struct {
	MinLevel     *int     `yaml:"minLevel,omitempty"`
	MaxLevel     *int     `yaml:"maxLevel,omitempty"`
	DefaultLevel *int     `yaml:"defaultLevel,omitempty"` // baseline a reset returns bands to
	Bands        []string `yaml:"bands,omitempty"`

	// StrictConversion selects the batch policy for remote pushes carrying
	// unknown band identifiers: false drops only the offending entries,
	// true drops the whole batch.
	StrictConversion bool `yaml:"strictConversion,omitempty"`
}

// Transport names for the capability endpoint.
const (
	// TransportSSE serves the capability tools over an HTTP SSE endpoint.
	TransportSSE = "sse"
	// TransportStdio serves the capability tools over standard I/O.
	TransportStdio = "stdio"
)

// CapabilityConfig defines the default capability endpoint the agent
// registers with.
type CapabilityConfig struct {
	Enabled   *bool  `yaml:"enabled,omitempty"`
	Host      string `yaml:"host,omitempty"`
	Port      int    `yaml:"port,omitempty"`
	Transport string `yaml:"transport,omitempty"`
}

// CapabilityEnabled reports whether the capability endpoint should be
// served; it defaults to true when the key is absent.
func (c CapabilityConfig) CapabilityEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}
