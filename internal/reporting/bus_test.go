package reporting

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusPublishDeliversToSubscribers(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	var received []Event
	sub := bus.Subscribe(nil, func(e Event) {
		received = append(received, e)
	})
	require.NotNil(t, sub)

	bus.Publish(NewEvent(EventTypeLocalSetBandLevels, "Bridge", "levels applied"))

	require.Len(t, received, 1)
	assert.Equal(t, EventTypeLocalSetBandLevels, received[0].Type)
	assert.Equal(t, "Bridge", received[0].Source)
	assert.False(t, received[0].Timestamp.IsZero())
}

func TestEventBusFilter(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	var got []EventType
	bus.Subscribe(FilterByType(EventTypeLevelTruncated), func(e Event) {
		got = append(got, e.Type)
	})

	bus.Publish(NewEvent(EventTypeLocalSetBandLevels, "Bridge", ""))
	bus.Publish(NewEvent(EventTypeLevelTruncated, "Bridge", ""))
	bus.Publish(NewEvent(EventTypeLoadState, "Bridge", ""))

	assert.Equal(t, []EventType{EventTypeLevelTruncated}, got)

	published, delivered := bus.Stats()
	assert.Equal(t, int64(3), published)
	assert.Equal(t, int64(1), delivered)
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	count := 0
	sub := bus.Subscribe(nil, func(Event) { count++ })

	bus.Publish(NewEvent(EventTypeBridgeActive, "Engine", ""))
	bus.Unsubscribe(sub)
	bus.Publish(NewEvent(EventTypeBridgeShutdown, "Engine", ""))

	assert.Equal(t, 1, count)
}

func TestEventBusClosedIsNoOp(t *testing.T) {
	bus := NewEventBus()

	count := 0
	bus.Subscribe(nil, func(Event) { count++ })
	bus.Close()

	bus.Publish(NewEvent(EventTypeBridgeShutdown, "Engine", ""))
	assert.Equal(t, 0, count)
	assert.Nil(t, bus.Subscribe(nil, func(Event) {}))
}

func TestEventWithAttr(t *testing.T) {
	e := NewEvent(EventTypeLevelTruncated, "Bridge", "truncated")
	e2 := e.WithAttr("band", "BASS").WithAttr("value", "99")

	assert.Nil(t, e.Attrs)
	assert.Equal(t, "BASS", e2.Attrs["band"])
	assert.Equal(t, "99", e2.Attrs["value"])
}

func TestCountersConcurrentInc(t *testing.T) {
	c := NewCounters()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Inc(MetricSetBandLevels)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(800), c.Get(MetricSetBandLevels))
	assert.Equal(t, int64(0), c.Get(MetricLocalResetBands))

	snap := c.Snapshot()
	assert.Equal(t, int64(800), snap[MetricSetBandLevels])
}
