/*
Package ingress implements the ingress adapter (C4): the thin,
stateless translation layer between the wire formats in pkg/rpc and
the cascade engine. It normalizes nothing itself (that's the
evaluator's job) and persists nothing itself (that's the store's) —
it only translates a request, forwards it, and translates the result
back.

# Architecture

	┌──────────────── INGRESS ────────────────┐
	│                                          │
	│  grpc.Server (Server, server.go)        │
	│    metricsInterceptor (every call)      │
	│       │                                  │
	│       ▼                                  │
	│  Adapter (ingress.go)                   │
	│    ObserveContainers -> cascade.Engine  │
	│    ChangeState       -> cascade.Engine  │
	│       │                                  │
	│       ▼                                  │
	│  pkg/cascade.Engine                     │
	└──────────────────────────────────────────┘

A malformed item inside an ObserveContainers batch (missing container
id or model name) is rejected on its own — it never prevents the
well-formed items in the same batch from being processed.

# Usage

	adapter := ingress.New(engine)
	server := ingress.NewServer(adapter)
	go server.Start(":7070")
	defer server.Stop()

Every call is timed and counted (pkg/metrics: ReconciliationDuration,
ReconciliationCyclesTotal, IngressObservationsTotal by outcome) at the
adapter boundary, and again per-method at the gRPC interceptor
(APIRequestDuration, APIRequestsTotal by method and status) — the two
are deliberately redundant: the adapter's numbers describe cascade
engine work, the interceptor's describe the RPC layer wrapping it.
*/
package ingress
