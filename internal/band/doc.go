// Package band defines the device-side equalizer band model: the closed set
// of frequency bands, band/level pairs, the configured gain range, and the
// pure conversion and clamping helpers used at the boundary between the
// device platform and the voice-service equalizer manager.
package band
