// Package platform provides a software equalizer endpoint.
//
// Endpoint stands in for real DSP hardware: it keeps the currently applied
// band levels in memory and forwards device-originated set, adjust, and
// reset requests to whichever controller is attached. It implements the
// device side of the bridge contract, so everything above it is exercised
// exactly as it would be against hardware.
package platform
