// Package ingress implements the ingress adapter (C4): a thin,
// stateless translation layer from wire formats to cascade engine
// calls. It owns no data and holds no locks; every call is forwarded
// to the engine and its result translated back.
package ingress

import (
	"context"

	"github.com/cascadeio/cascade/pkg/cascade"
	"github.com/cascadeio/cascade/pkg/log"
	"github.com/cascadeio/cascade/pkg/metrics"
	"github.com/cascadeio/cascade/pkg/rpc"
	"github.com/cascadeio/cascade/pkg/types"
)

// Adapter implements rpc.IngressServer over a cascade engine.
type Adapter struct {
	engine *cascade.Engine
}

// New builds an ingress adapter over engine.
func New(engine *cascade.Engine) *Adapter {
	return &Adapter{engine: engine}
}

// ObserveContainers translates a batch of wire observations into a
// cascade engine call and translates the per-item results back.
// Malformed items (missing container id or model name) are rejected
// individually so one bad entry doesn't poison the rest of the batch.
func (a *Adapter) ObserveContainers(ctx context.Context, req *rpc.ObserveContainersRequest) (*rpc.ObserveContainersResponse, error) {
	observations := make([]types.ContainerObservation, 0, len(req.Containers))
	malformed := make([]rpc.TransitionResultWire, 0)

	for _, c := range req.Containers {
		if c.ID == "" || c.ModelName == "" {
			malformed = append(malformed, rpc.TransitionResultWire{
				TransitionID: c.ID,
				Outcome:      string(types.OutcomeInvalidTransition),
				Message:      "observation missing container id or model name",
			})
			continue
		}
		observations = append(observations, types.ContainerObservation{
			ContainerID: c.ID,
			ModelName:   c.ModelName,
			RawStatus:   c.Status,
		})
	}

	timer := metrics.NewTimer()
	results := a.engine.ProcessObservationBatch(ctx, observations)
	timer.ObserveDuration(metrics.ReconciliationDuration)
	metrics.ReconciliationCyclesTotal.Inc()

	wire := make([]rpc.TransitionResultWire, 0, len(results)+len(malformed))
	for _, r := range results {
		metrics.IngressObservationsTotal.WithLabelValues(string(r.Outcome)).Inc()
		wire = append(wire, toWire(r))
	}
	for _, m := range malformed {
		metrics.IngressObservationsTotal.WithLabelValues(m.Outcome).Inc()
		wire = append(wire, m)
	}

	return &rpc.ObserveContainersResponse{Results: wire}, nil
}

// ChangeState forwards a single direct state-change request to the
// cascade engine verbatim.
func (a *Adapter) ChangeState(ctx context.Context, req *rpc.ChangeStateRequest) (*rpc.ChangeStateResponse, error) {
	var originNs int64
	if req.OriginTime != nil {
		originNs = req.OriginTime.AsTime().UnixNano()
	}
	changeReq := types.StateChangeRequest{
		ResourceKind:      types.ResourceKind(req.ResourceKind),
		ResourceName:      req.ResourceName,
		TargetState:       req.TargetState,
		TransitionID:      req.TransitionID,
		OriginTimestampNs: originNs,
		Source:            req.Source,
	}

	timer := metrics.NewTimer()
	result := a.engine.ProcessStateChangeRequest(ctx, changeReq)
	timer.ObserveDuration(metrics.ReconciliationDuration)
	metrics.ReconciliationCyclesTotal.Inc()
	metrics.IngressStateChangesTotal.WithLabelValues(string(result.Outcome)).Inc()

	transitionLog := log.WithTransitionID(req.TransitionID)
	transitionLog.Debug().
		Str("resource", req.ResourceName).
		Str("target_state", req.TargetState).
		Str("outcome", string(result.Outcome)).
		Msg("processed state-change request")

	return &rpc.ChangeStateResponse{Result: toWire(result)}, nil
}

func toWire(r types.TransitionResult) rpc.TransitionResultWire {
	return rpc.TransitionResultWire{
		TransitionID: r.TransitionID,
		Outcome:      string(r.Outcome),
		Message:      r.Message,
		ErrorDetail:  r.ErrorDetail,
	}
}
