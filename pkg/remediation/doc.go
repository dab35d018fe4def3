/*
Package remediation implements the remediation dispatcher (C5): the
component the cascade engine fires exactly when, and only when, a
package's stored state transitions into Error.

# Architecture

	┌─────────────── REMEDIATION ───────────────┐
	│                                             │
	│  cascade.Engine.writePackageState          │
	│    newState == Error && current != Error   │
	│       │                                     │
	│       ▼                                     │
	│  Dispatcher.Trigger(ctx, packageName)      │
	│    cooldown-gated dedup (inFlight map)     │
	│       │ (new trigger only)                  │
	│       ▼                                     │
	│  dispatchWithRetry goroutine                │
	│    attempt 1: wait 250ms on failure         │
	│    attempt 2: wait 1s on failure            │
	│    attempt 3: wait 5s on failure             │
	│    attempt N: wait 30s (steady cap)          │
	│       │                                     │
	│       ▼                                     │
	│  Client.Reconcile (gRPC, pkg/rpc)          │
	│    -> external remediation service          │
	└─────────────────────────────────────────────┘

# Usage

	client, err := remediation.Dial(remediation.DialConfig{Addr: "remediation:7071"})
	dispatcher := remediation.New(client, remediation.Config{Cooldown: 30 * time.Second})
	engine := cascade.New(store, dispatcher, broker)

# Semantics

Dispatch is at-least-once: retries continue until the reconcile RPC
succeeds, the dispatcher is shut down, or the trigger window goes
stale (no renewed Trigger call within four cooldown periods, taken as
a signal the package likely left Error on its own). It is
best-effort from the engine's point of view — a persistent failure is
logged and metered (RemediationFailuresTotal) but never rolls back
the package's stored Error state; the store remains the single source
of truth regardless of whether remediation ever succeeds.
*/
package remediation
