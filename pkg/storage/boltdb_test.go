package storage

import (
	"context"
	"testing"

	"github.com/cascadeio/cascade/pkg/types"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := NewBoltStore(Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewBoltStore() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBoltStore_ModelStateRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, found, err := store.ReadModelState(ctx, "web-1")
	if err != nil {
		t.Fatalf("ReadModelState() error = %v", err)
	}
	if found {
		t.Fatal("expected ReadModelState() to report not found for an unwritten model")
	}

	if err := store.WriteModelState(ctx, "web-1", types.ModelRunning); err != nil {
		t.Fatalf("WriteModelState() error = %v", err)
	}

	state, found, err := store.ReadModelState(ctx, "web-1")
	if err != nil {
		t.Fatalf("ReadModelState() error = %v", err)
	}
	if !found {
		t.Fatal("expected ReadModelState() to find the written state")
	}
	if state != types.ModelRunning {
		t.Errorf("state = %v, want %v", state, types.ModelRunning)
	}
}

func TestBoltStore_PackageStateRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.WritePackageState(ctx, "frontend", types.PackageDegraded); err != nil {
		t.Fatalf("WritePackageState() error = %v", err)
	}

	state, found, err := store.ReadPackageState(ctx, "frontend")
	if err != nil {
		t.Fatalf("ReadPackageState() error = %v", err)
	}
	if !found || state != types.PackageDegraded {
		t.Errorf("got (%v, %v), want (%v, true)", state, found, types.PackageDegraded)
	}
}

func TestBoltStore_Membership(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, model := range []string{"web-1", "web-2", "cache-1"} {
		if err := store.RegisterMembership(ctx, "frontend", model); err != nil {
			t.Fatalf("RegisterMembership(%s) error = %v", model, err)
		}
	}
	if err := store.RegisterMembership(ctx, "backend", "db-1"); err != nil {
		t.Fatalf("RegisterMembership() error = %v", err)
	}

	models, err := store.ListModelsOfPackage(ctx, "frontend")
	if err != nil {
		t.Fatalf("ListModelsOfPackage() error = %v", err)
	}
	if len(models) != 3 {
		t.Errorf("len(models) = %d, want 3", len(models))
	}

	parent, found, err := store.ReadParentPackage(ctx, "web-1")
	if err != nil {
		t.Fatalf("ReadParentPackage() error = %v", err)
	}
	if !found || parent != "frontend" {
		t.Errorf("ReadParentPackage() = (%v, %v), want (frontend, true)", parent, found)
	}

	_, found, err = store.ReadParentPackage(ctx, "unregistered")
	if err != nil {
		t.Fatalf("ReadParentPackage() error = %v", err)
	}
	if found {
		t.Error("expected ReadParentPackage() to report not found for an unregistered model")
	}
}

func TestBoltStore_MembershipIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.RegisterMembership(ctx, "frontend", "web-1"); err != nil {
			t.Fatalf("RegisterMembership() error = %v", err)
		}
	}

	models, err := store.ListModelsOfPackage(ctx, "frontend")
	if err != nil {
		t.Fatalf("ListModelsOfPackage() error = %v", err)
	}
	if len(models) != 1 {
		t.Errorf("len(models) = %d, want 1", len(models))
	}
}

func TestBoltStore_ListModelsOfPackageDoesNotLeakAcrossPrefixes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.RegisterMembership(ctx, "front", "a"); err != nil {
		t.Fatal(err)
	}
	if err := store.RegisterMembership(ctx, "frontend", "b"); err != nil {
		t.Fatal(err)
	}

	models, err := store.ListModelsOfPackage(ctx, "front")
	if err != nil {
		t.Fatalf("ListModelsOfPackage() error = %v", err)
	}
	if len(models) != 1 || models[0] != "a" {
		t.Errorf("models = %v, want [a]", models)
	}
}
