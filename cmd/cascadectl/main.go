package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "cascadectl",
	Short:   "cascadectl inspects and seeds a cascade store",
	Long:    "cascadectl is a developer convenience for working against the cascade engine's store directly: seeding package/model membership fixtures and inspecting package health without standing up the full ingress RPC path.",
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("cascadectl version %s\nCommit: %s\nBuilt: %s\n", Version, Commit, BuildTime))
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(inspectCmd)
}
