// Package main runs the flowcanvas session server: a websocket endpoint
// hosting one block editor per connection, a Prometheus endpoint, and an
// optional NATS feed of editor events.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/c360/flowcanvas/config"
	"github.com/c360/flowcanvas/editor"
	"github.com/c360/flowcanvas/eventfeed"
	"github.com/c360/flowcanvas/health"
	"github.com/c360/flowcanvas/metric"
	"github.com/c360/flowcanvas/session"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "flowcanvas"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(os.Args[1:]); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run(args []string) error {
	cliCfg, logger, shouldExit, err := initializeCLI(args)
	if shouldExit || err != nil {
		return err
	}

	cfg, err := loadConfig(cliCfg.ConfigPaths)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cliCfg.Validate {
		logger.Info("Configuration is valid")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg, logger)
}

// initializeCLI parses flags and sets up logging
func initializeCLI(args []string) (*CLIConfig, *slog.Logger, bool, error) {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	cliCfg, err := parseFlags(fs, args)
	if err != nil {
		return nil, nil, false, fmt.Errorf("invalid flags: %w", err)
	}
	if err := validateFlags(cliCfg); err != nil {
		return nil, nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, nil, true, nil
	}
	if cliCfg.ShowHelp {
		fs.Usage()
		return nil, nil, true, nil
	}

	logger := setupLogger(os.Stdout, cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	logger.Info("Starting flowcanvas",
		"version", Version,
		"build_time", BuildTime,
		"config_paths", cliCfg.ConfigPaths)

	return cliCfg, logger, false, nil
}

func loadConfig(paths []string) (*config.Config, error) {
	loader := config.NewLoader()
	for _, p := range paths {
		loader.AddLayer(p)
	}
	return loader.Load()
}

// serve runs the session server, the metrics server and the event feed
// until ctx is cancelled or one of the servers fails
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	monitor := health.NewMonitor()
	registry := metric.NewMetricsRegistry()
	metrics := registry.CoreMetrics()

	opts := cfg.EditorOptions()
	opts.Observers = append(opts.Observers, metric.NewEditorObserver(metrics, opts.Catalog))

	var feed *eventfeed.Feed
	if cfg.EventFeed.Enabled {
		conn, err := eventfeed.Connect(ctx, cfg.EventFeed.URL, monitor, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := conn.Drain(); err != nil {
				logger.Warn("NATS drain failed", "error", err)
			}
		}()
		feed = eventfeed.New(conn, cfg.EventFeed.SubjectPrefix, logger)
		if err := feed.RegisterMetrics(registry); err != nil {
			return err
		}
		logger.Info("Publishing editor events", "subject_prefix", cfg.EventFeed.SubjectPrefix)
	}

	sessions := session.NewServer(session.ServerConfig{
		Server:  cfg.Server,
		Editor:  opts,
		Metrics: metrics,
		Health:  monitor,
		Logger:  logger,
		Observers: func(sessionID string) []editor.Observer {
			obs := []editor.Observer{editor.NewLogObserver(logger.With("session_id", sessionID))}
			if feed != nil {
				obs = append(obs, feed.ForSession(sessionID))
			}
			return obs
		},
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sessions.Run(gctx)
	})
	if cfg.Metrics.Enabled {
		metricsServer := metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, registry, logger)
		g.Go(func() error {
			return metricsServer.Run(gctx)
		})
	}

	err := g.Wait()
	logger.Info("Shutdown complete")
	return err
}
