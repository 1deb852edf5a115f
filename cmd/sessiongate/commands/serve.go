package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marmos91/sessiongate/internal/logger"
	"github.com/marmos91/sessiongate/internal/telemetry"
	"github.com/marmos91/sessiongate/pkg/api"
	"github.com/marmos91/sessiongate/pkg/config"
	"github.com/marmos91/sessiongate/pkg/connection"
	"github.com/marmos91/sessiongate/pkg/metrics"
	prommetrics "github.com/marmos91/sessiongate/pkg/metrics/prometheus"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SessionGate enforcement layer",
	Long: `Start the SessionGate enforcement layer with the specified configuration.

The process runs in the foreground until it receives SIGINT or SIGTERM.
The ops HTTP server (health probes, metrics, restriction catalog) is
started unless disabled in the configuration.

Examples:
  # Start with default config location
  sessiongate serve

  # Start with custom config file
  sessiongate serve --config /etc/sessiongate/config.yaml

  # Override config via environment
  SESSIONGATE_LOGGING_LEVEL=DEBUG sessiongate serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry (if enabled)
	telemetryCfg := telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "sessiongate",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	}
	telemetryShutdown, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	logger.Info("configuration loaded",
		"source", configSource(GetConfigFile()),
		"log_level", cfg.Logging.Level)
	if telemetry.IsEnabled() {
		logger.Info("telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	}

	// Initialize metrics before anything that records them, so that
	// metrics.IsEnabled() is accurate when the manager is created.
	var accessMetrics metrics.AccessMetrics
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		accessMetrics = prommetrics.NewAccessMetrics()
		logger.Info("metrics collection enabled")
	} else {
		logger.Info("metrics collection disabled")
	}

	manager := connection.NewManager(accessMetrics)

	readOnly := cfg.Groups.ReadOnlyGroups()
	noConcurrent := cfg.Groups.DisallowConcurrentGroups()
	logger.Info("restricted groups configured",
		"read_only", len(readOnly),
		"disallow_concurrent", len(noConcurrent))

	if !cfg.API.IsEnabled() {
		logger.Info("ops server disabled, nothing to serve")
		return nil
	}

	apiServer := api.NewServer(cfg.API, manager.Tracker())
	logger.Info("ops server enabled", "port", cfg.API.Port)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- apiServer.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("SessionGate is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("shutdown signal received, initiating graceful shutdown")
		cancel()

		if err := <-serverDone; err != nil {
			return fmt.Errorf("ops server shutdown error: %w", err)
		}
		logger.Info("stopped gracefully")

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			return fmt.Errorf("ops server error: %w", err)
		}
		logger.Info("ops server stopped")
	}

	return nil
}

// configSource returns a description of where the config was loaded from.
func configSource(configFile string) string {
	if configFile != "" {
		return configFile
	}
	if config.DefaultConfigExists() {
		return config.GetDefaultConfigPath()
	}
	return "defaults"
}
