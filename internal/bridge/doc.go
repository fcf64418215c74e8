// Package bridge implements the equalizer coordination bridge: the stateful
// coordinator that reconciles band-level state between the device-local
// platform audio endpoint and the voice-service equalizer manager.
//
// The bridge owns no band data of its own. Remote pushes from the manager
// are converted to the device band model and forwarded to the platform;
// local set/adjust/reset events are converted the other way and submitted to
// the manager, which re-broadcasts canonical state. State loads read the
// live platform, never persistent storage.
//
// The bridge is callback-driven: every operation runs synchronously on the
// calling collaborator's goroutine, and the manager is the serialization
// point for concurrent mutations. The only internally guarded transition is
// shutdown, which runs at most once and tears registrations down in strict
// order: platform callback target first, manager registration second,
// capability agent last.
package bridge
