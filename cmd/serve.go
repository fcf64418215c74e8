package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"eqbridge/internal/band"
	"eqbridge/internal/bridge"
	"eqbridge/internal/capability"
	"eqbridge/internal/config"
	"eqbridge/internal/manager"
	"eqbridge/internal/platform"
	"eqbridge/internal/reporting"
	"eqbridge/pkg/logging"
)

// serveDebug enables verbose logging regardless of the configured level.
var serveDebug bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the equalizer bridge with its MCP capability endpoint",
	Long: `Starts the equalizer bridge against a software equalizer endpoint.

The bridge reads the equalizer configuration, seeds the manager from the
device's current band levels, and registers the equalizer control tools at
the configured capability endpoint (SSE by default, stdio for use as a
plain MCP server). It then runs until interrupted; Ctrl+C tears the
registrations down in order before exiting.

Configuration:
  eqbridge loads configuration from .eqbridge/config.yaml in the current
  directory, layered over the user config directory and built-in defaults.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// runServe is the main entry point for the serve command
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := logging.ParseLevel(cfg.Logging.Level)
	if serveDebug {
		level = logging.LevelDebug
	}
	logging.Init(level, os.Stderr)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	endpoint, err := newEndpoint(cfg.Equalizer)
	if err != nil {
		return err
	}

	registry := capability.NewRegistry(cfg.Capability, rootCmd.Version)
	if err := registry.Start(ctx); err != nil {
		return fmt.Errorf("failed to start capability registry: %w", err)
	}
	defer func() {
		if err := registry.Stop(context.Background()); err != nil {
			logging.Error("Serve", err, "stopping capability registry")
		}
	}()

	bus := reporting.NewEventBus()
	defer bus.Close()
	counters := reporting.NewCounters()

	b, err := bridge.Create(endpoint, cfg.Equalizer, bridge.Deps{
		Registrar: registry,
		AgentFactory: func(mgr *manager.Manager) (bridge.CapabilityAgent, error) {
			return capability.NewAgent(mgr)
		},
		Bus:      bus,
		Counters: counters,
	})
	if err != nil {
		return fmt.Errorf("failed to create equalizer bridge: %w", err)
	}

	logging.Info("Serve", "equalizer bridge running, press Ctrl+C to stop")
	<-ctx.Done()

	b.Shutdown()
	logging.Info("Serve", "operation counts: %v", counters.Snapshot())
	return nil
}

// newEndpoint builds the software equalizer the bridge drives, with every
// configured band at the default level.
func newEndpoint(cfg config.EqualizerConfig) (*platform.Endpoint, error) {
	bands := make([]band.Band, 0, len(cfg.Bands))
	for _, name := range cfg.Bands {
		b, err := band.ParseBand(name)
		if err != nil {
			return nil, fmt.Errorf("invalid equalizer configuration: %w", err)
		}
		bands = append(bands, b)
	}

	initial := 0
	if cfg.DefaultLevel != nil {
		initial = *cfg.DefaultLevel
	}
	return platform.NewEndpoint(bands, initial), nil
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
}
