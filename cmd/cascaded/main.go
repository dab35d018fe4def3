package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cascadeio/cascade/pkg/cascade"
	"github.com/cascadeio/cascade/pkg/events"
	"github.com/cascadeio/cascade/pkg/ingress"
	"github.com/cascadeio/cascade/pkg/log"
	"github.com/cascadeio/cascade/pkg/metrics"
	"github.com/cascadeio/cascade/pkg/remediation"
	"github.com/cascadeio/cascade/pkg/storage"
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
	Use:     "cascaded",
	Short:   "cascaded runs the cascade state reconciliation engine",
	Long:    "cascaded wires the store adapter, rule evaluator, cascade engine, ingress server, and remediation dispatcher into a single running process.",
	Version: Version,
	RunE:    runServe,
}

// envOr returns the named environment variable, or fallback if unset or empty.
func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("cascaded version %s\nCommit: %s\nBuilt: %s\n", Version, Commit, BuildTime))

	rootCmd.Flags().String("data-dir", envOr("CASCADE_DATA_DIR", "./data"), "directory for the local BoltDB store")
	rootCmd.Flags().String("ingress-addr", envOr("CASCADE_BIND_ADDR", ":7070"), "address the ingress gRPC server listens on")
	rootCmd.Flags().String("metrics-addr", ":9090", "address the metrics and health HTTP server listens on")
	rootCmd.Flags().String("remediation-addr", envOr("CASCADE_REMEDIATION_ADDR", ""), "address of the external remediation service (empty disables remediation dispatch)")
	rootCmd.Flags().Duration("remediation-cooldown", 0, "dedup window for repeated remediation triggers of the same package (0 uses the dispatcher default)")
	rootCmd.Flags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.Flags().Bool("log-json", false, "emit logs as JSON instead of console format")
}

func runServe(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	ingressAddr, _ := cmd.Flags().GetString("ingress-addr")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
	remediationAddr, _ := cmd.Flags().GetString("remediation-addr")
	remediationCooldown, _ := cmd.Flags().GetDuration("remediation-cooldown")
	logLevel, _ := cmd.Flags().GetString("log-level")
	logJSON, _ := cmd.Flags().GetBool("log-json")

	log.Init(log.Config{Level: log.Level(logLevel), JSONOutput: logJSON})
	metrics.SetVersion(Version)

	store, err := storage.NewBoltStore(storage.Config{DataDir: dataDir})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	metrics.RegisterComponent("store", true, "opened")

	broker := events.NewBroker()
	broker.Start()

	collector := metrics.NewCollector(broker)
	collector.Start()
	metrics.TrackFleetHealth(broker)

	var dispatcher *remediation.Dispatcher
	var remClient *remediation.Client
	if remediationAddr != "" {
		remClient, err = remediation.Dial(remediation.DialConfig{Addr: remediationAddr})
		if err != nil {
			return fmt.Errorf("dial remediation service: %w", err)
		}
		dispatcher = remediation.New(remClient, remediation.Config{Cooldown: remediationCooldown})
		metrics.RegisterComponent("remediation", true, "connected to "+remediationAddr)
	} else {
		log.L().Warn().Msg("no remediation address configured, Error transitions will not dispatch remediation")
	}

	var engineRemediator cascade.Remediator
	if dispatcher != nil {
		engineRemediator = dispatcher
	}
	engine := cascade.New(store, engineRemediator, broker)

	adapter := ingress.New(engine)
	server := ingress.NewServer(adapter)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(ingressAddr); err != nil {
			errCh <- fmt.Errorf("ingress server: %w", err)
		}
	}()
	metrics.RegisterComponent("ingress", true, "listening on "+ingressAddr)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/health", metrics.HealthHandler())
	mux.HandleFunc("/ready", metrics.ReadyHandler())
	mux.HandleFunc("/live", metrics.LivenessHandler())
	httpServer := &http.Server{Addr: metricsAddr, Handler: mux}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	log.L().Info().Str("ingress_addr", ingressAddr).Str("metrics_addr", metricsAddr).Msg("cascaded started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.L().Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.L().Error().Err(err).Msg("fatal server error")
	}

	server.Stop()
	_ = httpServer.Close()
	metrics.StopTrackingFleetHealth()
	collector.Stop()
	broker.Stop()
	if dispatcher != nil {
		dispatcher.Shutdown()
	}
	if remClient != nil {
		_ = remClient.Close()
	}
	if err := store.Close(); err != nil {
		log.L().Error().Err(err).Msg("error closing store")
	}

	log.L().Info().Msg("shutdown complete")
	return nil
}
