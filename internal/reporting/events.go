package reporting

import "time"

// EventType defines the type of a diagnostic event.
type EventType string

const (
	// Equalizer operation events
	EventTypeRemoteSetBandLevels  EventType = "equalizer.remote_set"
	EventTypeLoadState            EventType = "equalizer.load_state"
	EventTypeLocalSetBandLevels   EventType = "equalizer.local_set"
	EventTypeLocalAdjustBandLevel EventType = "equalizer.local_adjust"
	EventTypeLocalResetBands      EventType = "equalizer.local_reset"
	EventTypeLevelTruncated       EventType = "equalizer.level_truncated"
	EventTypeConversionDropped    EventType = "equalizer.conversion_dropped"

	// Bridge lifecycle events
	EventTypeBridgeInitializing EventType = "bridge.initializing"
	EventTypeBridgeActive       EventType = "bridge.active"
	EventTypeBridgeShutdown     EventType = "bridge.shutdown"
)

// Event is a single diagnostic record. Events are values; once published
// they are never mutated.
type Event struct {
	Type      EventType
	Source    string
	Timestamp time.Time
	Message   string
	Attrs     map[string]string
}

// NewEvent builds an event stamped with the current time.
func NewEvent(eventType EventType, source, message string) Event {
	return Event{
		Type:      eventType,
		Source:    source,
		Timestamp: time.Now(),
		Message:   message,
	}
}

// WithAttr returns a copy of the event carrying an extra attribute.
func (e Event) WithAttr(key, value string) Event {
	attrs := make(map[string]string, len(e.Attrs)+1)
	for k, v := range e.Attrs {
		attrs[k] = v
	}
	attrs[key] = value
	e.Attrs = attrs
	return e
}
