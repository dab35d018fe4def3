/*
Package storage defines the Store interface the cascade engine uses
to read and write model/package state and membership, along with a
BoltDB-backed implementation for local and test use.

# Architecture

	┌────────────────────────── STORE ──────────────────────────┐
	│                                                             │
	│  Store interface (narrow, context-aware, no transactions)  │
	│    ReadModelState / WriteModelState                         │
	│    ReadPackageState / WritePackageState                     │
	│    ListModelsOfPackage / ReadParentPackage                  │
	│    RegisterMembership                                       │
	│                                                             │
	│  Fixed key schema (every implementation must honor it):    │
	│    /model/{name}/state            -> ModelState             │
	│    /model/{name}/package          -> owning package name    │
	│    /package/{name}/state          -> PackageState            │
	│    /package/{name}/models/{model} -> membership marker       │
	│                                                             │
	│  BoltStore: one bbolt bucket per schema segment,            │
	│  last-writer-wins, no cross-key transactions                │
	└─────────────────────────────────────────────────────────────┘

The interface is deliberately narrow: six reads/writes plus a
membership registration call. There is no "list every model" or
"list every package" operation — by design, since a production
deployment backs this with an external KV store sized for
point-lookups, not full scans. This is why pkg/metrics.Collector
tracks aggregate state reactively off the event stream rather than
polling the store (see DESIGN.md).

# Usage

	store, err := storage.NewBoltStore(storage.Config{DataDir: "./data"})
	if err != nil { ... }
	defer store.Close()

	if err := store.RegisterMembership(ctx, "checkout-service", "web-frontend"); err != nil { ... }
	state, found, err := store.ReadModelState(ctx, "web-frontend")

# Failure handling

Every method wraps underlying bbolt errors in
cascadeerr.NewStoreUnavailable, tagged with the resource name and
operation, so callers up the stack (pkg/cascade) can classify a
transient store outage distinctly from a resource that genuinely
doesn't exist — a read or write failure never collapses into "not
found".

A production deployment is expected to back the Store interface with
an external, linearizable KV store; BoltStore exists to make the
engine runnable and testable without one.
*/
package storage
