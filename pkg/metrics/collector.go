package metrics

import (
	"sync"

	"github.com/cascadeio/cascade/pkg/events"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector maintains the cascade_models_total and
// cascade_packages_total gauges by watching the change event stream
// rather than polling the store: the store's key schema has no "list
// every model" or "list every package" operation, only lookups scoped
// to one resource or one package's membership, so a poll-based
// collector has nothing to enumerate. Every state transition the
// cascade engine makes is already published to the broker, so the
// collector subscribes once and keeps a running tally of the latest
// known state per resource.
type Collector struct {
	broker *events.Broker
	sub    events.Subscriber
	stopCh chan struct{}

	mu           sync.Mutex
	modelState   map[string]string
	packageState map[string]string
}

// NewCollector builds a collector over broker. Call Start to begin
// watching.
func NewCollector(broker *events.Broker) *Collector {
	return &Collector{
		broker:       broker,
		stopCh:       make(chan struct{}),
		modelState:   make(map[string]string),
		packageState: make(map[string]string),
	}
}

// Start subscribes to the broker and begins updating gauges as
// events arrive.
func (c *Collector) Start() {
	c.sub = c.broker.Subscribe()
	go c.run()
}

// Stop unsubscribes from the broker and stops the collector.
func (c *Collector) Stop() {
	close(c.stopCh)
	if c.sub != nil {
		c.broker.Unsubscribe(c.sub)
	}
}

func (c *Collector) run() {
	for {
		select {
		case event, ok := <-c.sub:
			if !ok {
				return
			}
			c.handle(event)
		case <-c.stopCh:
			return
		}
	}
}

func (c *Collector) handle(event *events.Event) {
	resource := event.Metadata["resource"]
	newState := event.Metadata["new"]
	if resource == "" || newState == "" {
		return
	}

	switch event.Type {
	case events.EventModelStateChanged:
		c.update(c.modelState, resource, newState, ModelsTotal)
	case events.EventPackageStateChanged:
		c.update(c.packageState, resource, newState, PackagesTotal)
	}
}

// update moves resource's tally from its previous state bucket (if
// any) into newState, adjusting gauge by name.
func (c *Collector) update(tracked map[string]string, resource, newState string, gauge *prometheus.GaugeVec) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := tracked[resource]; ok && old != newState {
		gauge.WithLabelValues(old).Dec()
	} else if ok && old == newState {
		return
	}
	tracked[resource] = newState
	gauge.WithLabelValues(newState).Inc()
}
