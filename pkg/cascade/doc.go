/*
Package cascade implements the cascade engine (C3): the single
authority for writing model and package state. Every other component
talks to the engine instead of the store directly, so the
read-evaluate-write-propagate cycle is never split across two
writers racing each other.

# Architecture

	┌─────────────────────── CASCADE ENGINE ───────────────────────┐
	│                                                                │
	│  ProcessObservationBatch(ctx, []ContainerObservation)         │
	│       │                                                        │
	│       ▼                                                        │
	│  group by model, normalize raw status strings                │
	│       │                                                        │
	│       ▼                                                        │
	│  ┌──────────────── per-resource lane (queue.go) ───────────┐  │
	│  │  merge into containerStatuses[model]                    │  │
	│  │  evaluator.ModelState(statuses) -> new state            │  │
	│  │  if changed: store.WriteModelState, publish event       │  │
	│  │  ReadParentPackage -> cascade to package lane           │  │
	│  └──────────────────────┬───────────────────────────────────┘  │
	│                         ▼                                      │
	│  ┌──────────────── per-resource lane (queue.go) ───────────┐  │
	│  │  ListModelsOfPackage, read each member's state          │  │
	│  │  evaluator.PackageState(states) -> new state             │  │
	│  │  if changed: store.WritePackageState, publish event      │  │
	│  │  if new state is Error: Remediator.Trigger (fire-forget) │  │
	│  └────────────────────────────────────────────────────────┘  │
	└────────────────────────────────────────────────────────────────┘

Every lane is keyed by resource name, not resource kind, so a model
named "p1" and a package named "p1" would actually collide — callers
are expected to keep model and package names from the same
namespace only if that collision is acceptable, since the queue has
no notion of kind.

# Usage

	engine := cascade.New(store, remediator, broker)
	results := engine.ProcessObservationBatch(ctx, []types.ContainerObservation{
		{ContainerID: "c1", ModelName: "web-frontend", RawStatus: "running"},
	})

# Concurrency

Reads and writes for one resource name never interleave: every state
transition for that name goes through the same lane, submitted in the
order ProcessObservationBatch or ProcessStateChangeRequest calls
arrived. Two different resource names cascade fully in parallel —
no engine-wide lock is held across a cascade; the only shared mutexes
guard the lane map and the containerStatuses merge. A lane's goroutine
exits once its queue drains and is recreated lazily on the next
submission, so an idle cascade engine holds no background goroutines.

# Convergence

The store's key schema has no room for individual container records,
only derived model and package state. The engine keeps its own
in-memory record of every container it has seen per model
(containerStatuses) so that splitting one model's full container set
across several observation batches converges to the same terminal
state as reporting it all at once. See DESIGN.md for why this one
piece of state cannot be made fully store-derived given the schema.
*/
package cascade
