// Package config provides configuration management for eqbridge.
//
// Configuration is loaded once at startup and merged in the following order,
// with later sources overriding earlier ones:
//
//  1. Default configuration (embedded in the binary)
//  2. User configuration (~/.config/eqbridge/config.yaml)
//  3. Project configuration (./.eqbridge/config.yaml)
//
// The configuration file uses YAML format:
//
//	logging:
//	  level: info
//
//	equalizer:
//	  minLevel: -6
//	  maxLevel: 6
//	  defaultLevel: 0
//	  bands: [BASS, MID, TREBLE]
//	  strictConversion: false
//
//	capability:
//	  enabled: true
//	  host: localhost
//	  port: 8687
//	  transport: sse
//
// The equalizer section is the authoritative source for the band-level range
// and the supported-band set; it is read exactly once when the bridge is
// constructed and never re-read afterwards. Validation of the section
// happens at bridge construction time, not here: the loader only guarantees
// the file parses.
package config
