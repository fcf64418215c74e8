package config

func intPtr(v int) *int { return &v }

// GetDefaultConfig returns the built-in configuration. The equalizer range
// defaults to [-6, 6] across the three standard bands, matching the
// voice-service default; the capability endpoint serves SSE on localhost.
func GetDefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Equalizer: EqualizerConfig{
			MinLevel:     intPtr(-6),
			MaxLevel:     intPtr(6),
			DefaultLevel: intPtr(0),
			Bands:        []string{"BASS", "MID", "TREBLE"},
		},
		Capability: CapabilityConfig{
			Host:      "localhost",
			Port:      8687,
			Transport: TransportSSE,
		},
	}
}
