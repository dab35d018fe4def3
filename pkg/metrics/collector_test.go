package metrics

import (
	"testing"
	"time"

	"github.com/cascadeio/cascade/pkg/events"
)

func TestCollector_TracksModelStateGauge(t *testing.T) {
	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	c := NewCollector(broker)
	c.Start()
	defer c.Stop()

	broker.Publish(&events.Event{
		Type: events.EventModelStateChanged,
		Metadata: map[string]string{
			"resource": "web-frontend",
			"old":      "Created",
			"new":      "Running",
		},
	})

	// Give the collector's goroutine a chance to process the event.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		state, ok := c.modelState["web-frontend"]
		c.mu.Unlock()
		if ok && state == "Running" {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("collector did not record model state transition in time")
}
