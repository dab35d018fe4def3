package main

import (
	"context"
	"fmt"

	"github.com/cascadeio/cascade/pkg/evaluator"
	"github.com/cascadeio/cascade/pkg/storage"
	"github.com/cascadeio/cascade/pkg/types"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <package>",
	Short: "Print a package's state, health score, and problematic models",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("data-dir", "./data", "directory of the BoltDB store to inspect")
}

func runInspect(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	pkgName := args[0]

	store, err := storage.NewBoltStore(storage.Config{DataDir: dataDir})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()

	state, found, err := store.ReadPackageState(ctx, pkgName)
	if err != nil {
		return fmt.Errorf("read package state: %w", err)
	}
	if !found {
		fmt.Printf("package %s has no recorded state yet\n", pkgName)
	} else {
		fmt.Printf("package %s: %s\n", pkgName, state)
	}

	models, err := store.ListModelsOfPackage(ctx, pkgName)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}
	if len(models) == 0 {
		fmt.Println("no member models registered")
		return nil
	}

	modelStates := make(map[string]types.ModelState, len(models))
	states := make([]types.ModelState, 0, len(models))
	for _, name := range models {
		modelState, modelFound, err := store.ReadModelState(ctx, name)
		if err != nil {
			return fmt.Errorf("read model %s: %w", name, err)
		}
		if !modelFound {
			modelState = types.ModelCreated
		}
		modelStates[name] = modelState
		states = append(states, modelState)
		fmt.Printf("  model %s: %s\n", name, modelState)
	}

	fmt.Printf("health score: %.2f\n", evaluator.HealthScore(states))

	problematic := evaluator.ProblematicModels(models, modelStates)
	if len(problematic) == 0 {
		fmt.Println("no problematic models")
	} else {
		fmt.Printf("problematic models: %v\n", problematic)
	}
	return nil
}
