package metrics

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/cascadeio/cascade/pkg/evaluator"
	"github.com/cascadeio/cascade/pkg/events"
	"github.com/cascadeio/cascade/pkg/types"
)

// HealthStatus represents the health status of a component
type HealthStatus struct {
	Status         string            `json:"status"` // "healthy", "degraded", "unhealthy"
	Timestamp      time.Time         `json:"timestamp"`
	Components     map[string]string `json:"components,omitempty"`
	Message        string            `json:"message,omitempty"`
	Version        string            `json:"version,omitempty"`
	Uptime         string            `json:"uptime,omitempty"`
	StartTime      time.Time         `json:"-"`
	FleetScore     *float64          `json:"fleet_health_score,omitempty"`
	ProblematicSet []string          `json:"problematic_models,omitempty"`
}

var (
	healthChecker = &HealthChecker{
		components: make(map[string]ComponentHealth),
		startTime:  time.Now(),
		fleet:      make(map[string]types.ModelState),
	}
)

// ComponentHealth tracks the health of a single component
type ComponentHealth struct {
	Name    string
	Healthy bool
	Message string
	Updated time.Time
}

// HealthChecker manages health checks for various components. It
// also tracks model state by subscribing to the change-event broker
// the same way metrics.Collector does: the store has no
// list-everything operation, so the fleet-wide health score folded
// into the health/readiness payload can only be derived from the
// event stream, not from a poll of the store.
type HealthChecker struct {
	mu         sync.RWMutex
	components map[string]ComponentHealth
	startTime  time.Time
	version    string

	fleet  map[string]types.ModelState
	broker *events.Broker
	sub    events.Subscriber
	stopCh chan struct{}
}

// TrackFleetHealth subscribes the global health checker to broker so
// GetHealth/GetReadiness can fold a live evaluator.HealthScore and
// the current evaluator.ProblematicModels list into the payload.
// Call StopTrackingFleetHealth to unsubscribe on shutdown.
func TrackFleetHealth(broker *events.Broker) {
	healthChecker.mu.Lock()
	if healthChecker.broker != nil {
		healthChecker.mu.Unlock()
		return
	}
	healthChecker.broker = broker
	healthChecker.sub = broker.Subscribe()
	healthChecker.stopCh = make(chan struct{})
	sub, stopCh := healthChecker.sub, healthChecker.stopCh
	healthChecker.mu.Unlock()

	go func() {
		for {
			select {
			case event, ok := <-sub:
				if !ok {
					return
				}
				if event.Type != events.EventModelStateChanged {
					continue
				}
				resource := event.Metadata["resource"]
				newState := event.Metadata["new"]
				if resource == "" || newState == "" {
					continue
				}
				healthChecker.mu.Lock()
				healthChecker.fleet[resource] = types.ModelState(newState)
				healthChecker.mu.Unlock()
			case <-stopCh:
				return
			}
		}
	}()
}

// StopTrackingFleetHealth unsubscribes the global health checker from
// its broker, if TrackFleetHealth was called.
func StopTrackingFleetHealth() {
	healthChecker.mu.Lock()
	defer healthChecker.mu.Unlock()
	if healthChecker.broker == nil {
		return
	}
	close(healthChecker.stopCh)
	healthChecker.broker.Unsubscribe(healthChecker.sub)
	healthChecker.broker = nil
	healthChecker.sub = nil
}

// fleetHealth computes the current evaluator.HealthScore and
// evaluator.ProblematicModels over whatever models TrackFleetHealth
// has observed so far. Returns (nil, nil) when nothing has been
// observed yet, so an idle process doesn't report a misleadingly
// perfect fleet score.
func (h *HealthChecker) fleetHealth() (*float64, []string) {
	if len(h.fleet) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(h.fleet))
	states := make([]types.ModelState, 0, len(h.fleet))
	for name, state := range h.fleet {
		names = append(names, name)
		states = append(states, state)
	}
	score := evaluator.HealthScore(states)
	bad := evaluator.ProblematicModels(names, h.fleet)
	return &score, bad
}

// SetVersion sets the version string for health responses
func SetVersion(version string) {
	healthChecker.mu.Lock()
	defer healthChecker.mu.Unlock()
	healthChecker.version = version
}

// RegisterComponent registers a component for health checking
func RegisterComponent(name string, healthy bool, message string) {
	healthChecker.mu.Lock()
	defer healthChecker.mu.Unlock()

	healthChecker.components[name] = ComponentHealth{
		Name:    name,
		Healthy: healthy,
		Message: message,
		Updated: time.Now(),
	}
}

// UpdateComponent updates the health status of a component
func UpdateComponent(name string, healthy bool, message string) {
	RegisterComponent(name, healthy, message) // Same implementation
}

// GetHealth returns the overall health status
func GetHealth() HealthStatus {
	healthChecker.mu.RLock()
	defer healthChecker.mu.RUnlock()

	status := "healthy"
	components := make(map[string]string)

	for name, comp := range healthChecker.components {
		if !comp.Healthy {
			status = "unhealthy"
			components[name] = "unhealthy: " + comp.Message
		} else {
			components[name] = "healthy"
		}
	}

	uptime := time.Since(healthChecker.startTime)
	score, bad := healthChecker.fleetHealth()
	if score != nil && *score < 1.0 && status == "healthy" {
		status = "degraded"
	}

	return HealthStatus{
		Status:         status,
		Timestamp:      time.Now(),
		Components:     components,
		Version:        healthChecker.version,
		Uptime:         uptime.String(),
		StartTime:      healthChecker.startTime,
		FleetScore:     score,
		ProblematicSet: bad,
	}
}

// GetReadiness returns readiness status (checks if critical components are ready)
func GetReadiness() HealthStatus {
	healthChecker.mu.RLock()
	defer healthChecker.mu.RUnlock()

	status := "ready"
	message := ""
	components := make(map[string]string)

	// Check critical components. Remediation is optional (cmd/cascaded
	// runs with dispatch disabled when no remediation address is
	// configured), so it is not on this list.
	criticalComponents := []string{"store", "ingress"}

	for _, name := range criticalComponents {
		if comp, exists := healthChecker.components[name]; exists {
			if !comp.Healthy {
				status = "not_ready"
				message = "waiting for " + name
				components[name] = "not ready: " + comp.Message
			} else {
				components[name] = "ready"
			}
		} else {
			// Component not registered yet
			status = "not_ready"
			message = "waiting for " + name + " initialization"
			components[name] = "not registered"
		}
	}

	uptime := time.Since(healthChecker.startTime)
	score, bad := healthChecker.fleetHealth()

	return HealthStatus{
		Status:         status,
		Timestamp:      time.Now(),
		Components:     components,
		Message:        message,
		Version:        healthChecker.version,
		Uptime:         uptime.String(),
		StartTime:      healthChecker.startTime,
		FleetScore:     score,
		ProblematicSet: bad,
	}
}

// HealthHandler returns an HTTP handler for the /health endpoint
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health := GetHealth()

		w.Header().Set("Content-Type", "application/json")

		// Set appropriate status code
		statusCode := http.StatusOK
		if health.Status == "unhealthy" {
			statusCode = http.StatusServiceUnavailable
		}
		w.WriteHeader(statusCode)

		_ = json.NewEncoder(w).Encode(health)
	}
}

// ReadyHandler returns an HTTP handler for the /ready endpoint
func ReadyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		readiness := GetReadiness()

		w.Header().Set("Content-Type", "application/json")

		// Set appropriate status code
		statusCode := http.StatusOK
		if readiness.Status != "ready" {
			statusCode = http.StatusServiceUnavailable
		}
		w.WriteHeader(statusCode)

		_ = json.NewEncoder(w).Encode(readiness)
	}
}

// LivenessHandler returns a simple liveness check (always returns 200 if process is running)
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "alive",
			"uptime": time.Since(healthChecker.startTime).String(),
		})
	}
}
