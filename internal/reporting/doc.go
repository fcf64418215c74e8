// Package reporting is the diagnostics side-channel for eqbridge: a
// fire-and-forget counter registry keyed by operation name, and an event bus
// that publishes equalizer operation and lifecycle events to subscribers.
//
// Nothing in this package ever affects control flow. Publishing to a bus
// with no subscribers is free, counters never fail, and a slow subscriber
// only ever loses events, it cannot block an equalizer operation.
package reporting
