package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cascadeio/cascade/pkg/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a package/model membership fixture into the store",
	Long: `Seed loads a YAML fixture describing packages and their member
models into the store, for local development and integration tests.
It does not touch model or package state; state is only ever produced
by the cascade engine from observations or direct requests.

Example fixture:

  packages:
    - name: checkout-service
      models:
        - web-frontend
        - payment-worker
    - name: inventory-service
      models:
        - inventory-api`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringP("file", "f", "", "YAML fixture file to load (required)")
	seedCmd.Flags().String("data-dir", "./data", "directory of the BoltDB store to seed")
	_ = seedCmd.MarkFlagRequired("file")
}

// fixture is the YAML shape a seed file is parsed into.
type fixture struct {
	Packages []fixturePackage `yaml:"packages"`
}

type fixturePackage struct {
	Name   string   `yaml:"name"`
	Models []string `yaml:"models"`
}

func runSeed(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("file")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}

	var fx fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	store, err := storage.NewBoltStore(storage.Config{DataDir: dataDir})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	for _, pkg := range fx.Packages {
		if pkg.Name == "" {
			return fmt.Errorf("fixture has a package with no name")
		}
		for _, model := range pkg.Models {
			if model == "" {
				return fmt.Errorf("package %s has a model with no name", pkg.Name)
			}
			if err := store.RegisterMembership(ctx, pkg.Name, model); err != nil {
				return fmt.Errorf("register %s/%s: %w", pkg.Name, model, err)
			}
			fmt.Printf("✓ registered %s -> %s\n", pkg.Name, model)
		}
	}

	fmt.Printf("seeded %d package(s)\n", len(fx.Packages))
	return nil
}
