package types

import (
	"time"
)

// ContainerStatus is the normalized status of a single observed container.
// Raw runtime strings are mapped onto this closed set by
// evaluator.NormalizeStatus, which the cascade engine applies to each
// observation; the ingress passes raw strings through unchanged.
type ContainerStatus string

const (
	ContainerCreated ContainerStatus = "Created"
	ContainerRunning ContainerStatus = "Running"
	ContainerStopped ContainerStatus = "Stopped"
	ContainerExited  ContainerStatus = "Exited"
	ContainerDead    ContainerStatus = "Dead"
	ContainerPaused  ContainerStatus = "Paused"
)

// ModelState is the aggregated state of a model, derived from the
// statuses of its member containers by the rule evaluator.
type ModelState string

const (
	ModelCreated ModelState = "Created"
	ModelRunning ModelState = "Running"
	ModelPaused  ModelState = "Paused"
	ModelExited  ModelState = "Exited"
	ModelDead    ModelState = "Dead"
)

// PackageState is the aggregated state of a package, derived from the
// states of its member models.
type PackageState string

const (
	PackageIdle     PackageState = "Idle"
	PackageRunning  PackageState = "Running"
	PackagePaused   PackageState = "Paused"
	PackageExited   PackageState = "Exited"
	PackageDegraded PackageState = "Degraded"
	PackageError    PackageState = "Error"
)

// ResourceKind distinguishes the two levels a state-change request can
// target directly.
type ResourceKind string

const (
	ResourceModel   ResourceKind = "Model"
	ResourcePackage ResourceKind = "Package"
)

// ContainerObservation is a single (container, model, raw status) fact
// reported by the node-side collector.
type ContainerObservation struct {
	ContainerID string
	ModelName   string
	RawStatus   string
}

// StateChangeRequest is an explicit, directly-targeted state change
// submitted by another internal subsystem rather than observed from a
// container runtime.
type StateChangeRequest struct {
	ResourceKind      ResourceKind
	ResourceName      string
	TargetState       string
	TransitionID      string
	OriginTimestampNs int64
	Source            string
}

// Outcome is the result code returned for a single processed item,
// whether it came from an observation batch or a state-change request.
type Outcome string

const (
	OutcomeSuccess           Outcome = "Success"
	OutcomeUnchanged         Outcome = "Unchanged"
	OutcomeInvalidTransition Outcome = "InvalidTransition"
	OutcomeStorageError      Outcome = "StorageError"
	OutcomeUnknownResource   Outcome = "UnknownResource"
)

// TransitionResult reports the outcome of processing one state change,
// whether it was derived from observations or requested explicitly.
type TransitionResult struct {
	TransitionID string
	Outcome      Outcome
	Message      string
	ErrorDetail  string
}

// ResourceChange describes one store write the cascade engine
// performed. The engine does not construct it: change notifications
// reach the broker as events.Event values.
type ResourceChange struct {
	Kind     ResourceKind
	Name     string
	OldState string
	NewState string
	At       time.Time
}
