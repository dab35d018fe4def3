package storage

import (
	"context"

	"github.com/cascadeio/cascade/pkg/types"
)

// Store is the client-side interface to the external, linearizable KV
// store backing the cascade engine. The engine treats this store as
// the single source of truth for every resource's current state and
// membership: it never keeps its own copy across calls.
//
// The key schema is fixed and is part of the contract every
// implementation must honor:
//
//	/model/{name}/state              -> ModelState
//	/model/{name}/package             -> owning package name
//	/package/{name}/state            -> PackageState
//	/package/{name}/models/{model}   -> membership marker
//
// Every method takes a context so a caller can bound a call with a
// deadline or cancel it if the request that triggered it was already
// superseded; none of them retry internally.
type Store interface {
	// ReadModelState returns the model's current state and true, or
	// ("", false, nil) if no state has ever been written for it.
	ReadModelState(ctx context.Context, name string) (types.ModelState, bool, error)

	// WriteModelState durably persists the model's new state.
	WriteModelState(ctx context.Context, name string, state types.ModelState) error

	// ReadPackageState returns the package's current state and true,
	// or ("", false, nil) if no state has ever been written for it.
	ReadPackageState(ctx context.Context, name string) (types.PackageState, bool, error)

	// WritePackageState durably persists the package's new state.
	WritePackageState(ctx context.Context, name string, state types.PackageState) error

	// ListModelsOfPackage returns the names of every model currently
	// registered as a member of the named package, in no particular
	// order.
	ListModelsOfPackage(ctx context.Context, packageName string) ([]string, error)

	// ReadParentPackage returns the name of the package that owns the
	// named model, and true, or ("", false, nil) if the model has no
	// recorded parent.
	ReadParentPackage(ctx context.Context, modelName string) (string, bool, error)

	// RegisterMembership records that modelName belongs to
	// packageName, so future ListModelsOfPackage and ReadParentPackage
	// calls can see it. It is idempotent.
	RegisterMembership(ctx context.Context, packageName, modelName string) error

	// Close releases any resources held by the store.
	Close() error
}
