package cascade

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cascadeio/cascade/pkg/cascadeerr"
	"github.com/cascadeio/cascade/pkg/evaluator"
	"github.com/cascadeio/cascade/pkg/events"
	"github.com/cascadeio/cascade/pkg/log"
	"github.com/cascadeio/cascade/pkg/metrics"
	"github.com/cascadeio/cascade/pkg/storage"
	"github.com/cascadeio/cascade/pkg/types"
)

var logger = log.WithComponent(log.ComponentCascade)

// Remediator is invoked exactly when a package's stored state
// transitions into Error. Implementations are expected to dedup and
// retry on their own terms; the cascade engine fires and forgets.
type Remediator interface {
	Trigger(ctx context.Context, packageName string)
}

// Engine is the cascade engine (C3). It is safe for concurrent use by
// many ingress callers at once.
//
// The engine keeps one piece of state the external store schema has
// no room for: the latest known status of every container it has
// ever observed, per model. The store only records derived model and
// package states, never individual containers, so a batch reporting
// just one of a model's containers must still be evaluated against
// every other container that model has previously reported — without
// that bookkeeping, splitting a full report across several batches
// would not converge to the same terminal state as one batch
// reporting all of them.
type Engine struct {
	store      storage.Store
	remediator Remediator
	broker     *events.Broker
	queue      *resourceQueue

	containerMu       sync.Mutex
	containerStatuses map[string]map[string]types.ContainerStatus // modelName -> containerID -> status
}

// New builds a cascade engine over the given store and remediator. A
// nil remediator is permitted for tests that don't care about
// remediation dispatch.
func New(store storage.Store, remediator Remediator, broker *events.Broker) *Engine {
	return &Engine{
		store:             store,
		remediator:        remediator,
		broker:            broker,
		queue:             newResourceQueue(),
		containerStatuses: make(map[string]map[string]types.ContainerStatus),
	}
}

// validModelStates and validPackageStates enumerate the states the
// evaluator can ever produce, used to reject explicit state-change
// requests naming anything else.
var validModelStates = map[types.ModelState]bool{
	types.ModelCreated: true,
	types.ModelRunning: true,
	types.ModelPaused:  true,
	types.ModelExited:  true,
	types.ModelDead:    true,
}

var validPackageStates = map[types.PackageState]bool{
	types.PackageIdle:     true,
	types.PackageRunning:  true,
	types.PackagePaused:   true,
	types.PackageExited:   true,
	types.PackageDegraded: true,
	types.PackageError:    true,
}

// ProcessObservationBatch groups observations by model, deduplicates
// to the latest status per container, computes each affected model's
// new state, and cascades upward to every package that owns a changed
// model. Observations are processed in lexicographic order of model
// name so the sequence of store writes is deterministic.
func (e *Engine) ProcessObservationBatch(ctx context.Context, observations []types.ContainerObservation) []types.TransitionResult {
	byModel := make(map[string]map[string]types.ContainerStatus)
	for _, obs := range observations {
		if byModel[obs.ModelName] == nil {
			byModel[obs.ModelName] = make(map[string]types.ContainerStatus)
		}
		byModel[obs.ModelName][obs.ContainerID] = evaluator.NormalizeStatus(obs.RawStatus)
	}

	modelNames := make([]string, 0, len(byModel))
	for name := range byModel {
		modelNames = append(modelNames, name)
	}
	sort.Strings(modelNames)

	results := make([]types.TransitionResult, 0, len(modelNames))
	changedPackages := make(map[string]bool)

	for _, modelName := range modelNames {
		outcome, pkg, err := e.observeModel(ctx, modelName, byModel[modelName])
		results = append(results, modelResult(modelName, outcome, err))
		if outcome == types.OutcomeSuccess && pkg != "" {
			changedPackages[pkg] = true
		}
	}

	e.cascadePackages(ctx, changedPackages)
	return results
}

// ProcessStateChangeRequest performs a direct, explicitly-targeted
// write to a model or package, then cascades from it exactly as an
// observation-driven change would.
func (e *Engine) ProcessStateChangeRequest(ctx context.Context, req types.StateChangeRequest) types.TransitionResult {
	switch req.ResourceKind {
	case types.ResourceModel:
		state := types.ModelState(req.TargetState)
		if !validModelStates[state] {
			return invalidTransitionResult(req.TransitionID, req.TargetState)
		}
		if _, found, parentErr := e.store.ReadParentPackage(ctx, req.ResourceName); parentErr == nil && !found {
			return types.TransitionResult{
				TransitionID: req.TransitionID,
				Outcome:      types.OutcomeUnknownResource,
				Message:      "model has no registered parent package",
				ErrorDetail:  req.ResourceName,
			}
		}

		outcome, pkg, err := e.writeModelState(ctx, req.ResourceName, state)
		if outcome == types.OutcomeSuccess && pkg != "" {
			e.cascadePackages(ctx, map[string]bool{pkg: true})
		}
		return resultFor(req.TransitionID, outcome, err)

	case types.ResourcePackage:
		state := types.PackageState(req.TargetState)
		if !validPackageStates[state] {
			return invalidTransitionResult(req.TransitionID, req.TargetState)
		}
		outcome, err := e.writePackageState(ctx, req.ResourceName, state)
		return resultFor(req.TransitionID, outcome, err)

	default:
		return types.TransitionResult{
			TransitionID: req.TransitionID,
			Outcome:      types.OutcomeInvalidTransition,
			Message:      "unrecognized resource kind",
			ErrorDetail:  string(req.ResourceKind),
		}
	}
}

// observeModel merges a batch's per-container statuses for one model
// into the engine's running record of that model's children, then
// evaluates and applies the resulting model state. The merge and the
// apply happen inside the same per-model lane submission so a
// concurrent observation of the same model can never interleave with
// the read-evaluate-write it triggers.
func (e *Engine) observeModel(ctx context.Context, modelName string, batch map[string]types.ContainerStatus) (outcome types.Outcome, parentPackage string, err error) {
	e.queue.submit(modelName, func() {
		newState := e.mergeContainerStatuses(modelName, batch)
		outcome, parentPackage, err = e.applyModelState(ctx, modelName, newState)
	})
	return outcome, parentPackage, err
}

// mergeContainerStatuses folds batch into the model's running record
// of container statuses and returns the evaluator's output over the
// full, merged set.
func (e *Engine) mergeContainerStatuses(modelName string, batch map[string]types.ContainerStatus) types.ModelState {
	e.containerMu.Lock()
	defer e.containerMu.Unlock()

	known := e.containerStatuses[modelName]
	if known == nil {
		known = make(map[string]types.ContainerStatus)
		e.containerStatuses[modelName] = known
	}
	for containerID, status := range batch {
		known[containerID] = status
	}

	statuses := make([]types.ContainerStatus, 0, len(known))
	for _, status := range known {
		statuses = append(statuses, status)
	}
	return evaluator.ModelState(statuses)
}

// writeModelState applies an explicitly-targeted model state (from a
// direct state-change request) under the model's lane, bypassing
// container-status accumulation entirely.
func (e *Engine) writeModelState(ctx context.Context, modelName string, newState types.ModelState) (outcome types.Outcome, parentPackage string, err error) {
	e.queue.submit(modelName, func() {
		outcome, parentPackage, err = e.applyModelState(ctx, modelName, newState)
	})
	return outcome, parentPackage, err
}

// applyModelState reads the model's stored state, writes newState if
// it differs, and returns the model's parent package name so the
// caller can cascade — "" if the model has no registered parent
// (treated as UnknownResource for direct requests, but tolerated for
// observation-driven writes since a model can exist before its
// package membership is authored). Callers must already hold the
// model's lane.
func (e *Engine) applyModelState(ctx context.Context, modelName string, newState types.ModelState) (outcome types.Outcome, parentPackage string, err error) {
	current, found, readErr := e.store.ReadModelState(ctx, modelName)
	if readErr != nil {
		logger.Warn().Err(readErr).Str("model", modelName).Msg("read model state failed, treating as absent")
		current, found = types.ModelCreated, false
	}
	if found && current == newState {
		return types.OutcomeUnchanged, "", nil
	}

	if writeErr := e.store.WriteModelState(ctx, modelName, newState); writeErr != nil {
		return types.OutcomeStorageError, "", writeErr
	}

	e.publish(types.ResourceModel, modelName, string(current), string(newState))

	pkg, pkgFound, pkgErr := e.store.ReadParentPackage(ctx, modelName)
	if pkgErr != nil {
		logger.Warn().Err(pkgErr).Str("model", modelName).Msg("read parent package failed")
	}
	if pkgFound {
		parentPackage = pkg
	}
	return types.OutcomeSuccess, parentPackage, nil
}

// cascadePackages recomputes and, if changed, writes the state of
// every package in names, in lexicographic order, triggering
// remediation on any transition into Error.
func (e *Engine) cascadePackages(ctx context.Context, names map[string]bool) {
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	for _, pkgName := range sorted {
		_, _ = e.writePackageState(ctx, pkgName, "")
	}
}

// writePackageState recomputes a package's state from its current
// member model states and writes it if changed. An explicit
// targetOverride, when non-empty, is used instead of recomputing
// (the direct state-change request path); it still goes through the
// same idempotence check and remediation trigger.
func (e *Engine) writePackageState(ctx context.Context, pkgName string, targetOverride types.PackageState) (outcome types.Outcome, err error) {
	e.queue.submit(pkgName, func() {
		models, listErr := e.store.ListModelsOfPackage(ctx, pkgName)
		if listErr != nil {
			// A store read failure is not the same as a package that
			// genuinely has no members: the resource holds at its last
			// known state and the caller can retry next cycle, rather
			// than being told the resource doesn't exist.
			logger.Warn().Err(listErr).Str("package", pkgName).Msg("list package members failed")
			outcome = types.OutcomeStorageError
			err = cascadeerr.NewStoreUnavailable("list package members failed", listErr).WithResource(pkgName).WithOperation("ListModelsOfPackage")
			return
		}
		if len(models) == 0 {
			outcome = types.OutcomeUnknownResource
			err = cascadeerr.NewUnknownResource("package has no registered members", nil).WithResource(pkgName)
			return
		}

		current, found, readErr := e.store.ReadPackageState(ctx, pkgName)
		if readErr != nil {
			logger.Warn().Err(readErr).Str("package", pkgName).Msg("read package state failed, treating as absent")
			current, found = types.PackageIdle, false
		}

		modelStates := make(map[string]types.ModelState, len(models))
		for _, modelName := range models {
			state, modelFound, stateErr := e.store.ReadModelState(ctx, modelName)
			if stateErr != nil || !modelFound {
				state = types.ModelCreated
			}
			modelStates[modelName] = state
		}

		states := make([]types.ModelState, 0, len(models))
		for _, modelName := range models {
			states = append(states, modelStates[modelName])
		}

		var newState types.PackageState
		if targetOverride != "" {
			newState = targetOverride
		} else {
			newState = evaluator.PackageState(states)
		}

		if len(models) > 0 {
			metrics.PackageHealthScore.WithLabelValues(pkgName).Set(evaluator.HealthScore(states))
		}

		if found && current == newState {
			outcome = types.OutcomeUnchanged
			return
		}

		if writeErr := e.store.WritePackageState(ctx, pkgName, newState); writeErr != nil {
			err = writeErr
			outcome = types.OutcomeStorageError
			return
		}

		e.publish(types.ResourcePackage, pkgName, string(current), string(newState))
		outcome = types.OutcomeSuccess

		if newState == types.PackageError && current != types.PackageError && e.remediator != nil {
			problematic := evaluator.ProblematicModels(models, modelStates)
			resourceLog := log.WithResource(pkgName)
			resourceLog.Warn().Strs("problematic_models", problematic).Msg("package entered Error, triggering remediation")
			e.remediator.Trigger(ctx, pkgName)
		}
	})
	return outcome, err
}

func (e *Engine) publish(kind types.ResourceKind, name, oldState, newState string) {
	if e.broker == nil {
		return
	}
	eventType := events.EventModelStateChanged
	if kind == types.ResourcePackage {
		eventType = events.EventPackageStateChanged
	}
	e.broker.Publish(&events.Event{
		Type:    eventType,
		Message: fmt.Sprintf("%s %s -> %s", name, oldState, newState),
		Metadata: map[string]string{
			"resource": name,
			"old":      oldState,
			"new":      newState,
		},
	})
}

func modelResult(modelName string, outcome types.Outcome, err error) types.TransitionResult {
	result := types.TransitionResult{
		TransitionID: modelName,
		Outcome:      outcome,
	}
	if err != nil {
		result.ErrorDetail = err.Error()
	}
	return result
}

func resultFor(transitionID string, outcome types.Outcome, err error) types.TransitionResult {
	result := types.TransitionResult{
		TransitionID: transitionID,
		Outcome:      outcome,
	}
	if err != nil {
		result.ErrorDetail = err.Error()
	}
	return result
}

func invalidTransitionResult(transitionID, targetState string) types.TransitionResult {
	return types.TransitionResult{
		TransitionID: transitionID,
		Outcome:      types.OutcomeInvalidTransition,
		Message:      "target state is not a value the evaluator produces",
		ErrorDetail:  targetState,
	}
}
