// Package manager implements the voice-service equalizer manager: the
// authoritative owner of current equalizer band-level state.
//
// The manager speaks its own wire representation, string band identifiers
// mapped to integer levels, and knows nothing about the device-side band
// model; the bridge converts between the two at every boundary.
//
// All mutating calls are serialized on an internal mutex, making the manager
// the single serialization point for concurrent equalizer changes. After
// every mutation the manager persists its state through its Storage and
// broadcasts the changed levels to every registered equalizer
// implementation.
//
// Contract asymmetry relied on by callers: SetBandLevels stores the supplied
// levels verbatim, while AdjustBandLevels clamps the adjusted result into
// the configured range before storing it.
package manager
