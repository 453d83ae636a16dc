package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OldStager01/battery-health/api"
	"github.com/OldStager01/battery-health/internal/logger"
	"github.com/OldStager01/battery-health/internal/metrics"
	"github.com/OldStager01/battery-health/internal/orchestrator"
	"github.com/OldStager01/battery-health/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
)

// @title           Battery Health Dashboard API
// @version         1.0
// @description     SOH trajectories, EOL threshold analysis and the demonstration upload and training flows.
// @BasePath        /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	loader := config.NewLoader(*configPath)
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Setup(cfg.App.LogLevel, cfg.App.Mode)
	logger.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Mode)
	if file := loader.ConfigFile(); file != "" {
		logger.Infof("Using config file %s", file)
	}

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	orch, err := orchestrator.New(cfg, nil)
	if err != nil {
		return err
	}
	if err := orch.Start(); err != nil {
		return fmt.Errorf("failed to start orchestrator: %w", err)
	}
	defer orch.Stop()

	loader.Watch(orch.ApplyConfig, func(err error) {
		logger.Warnf("Config reload rejected: %v", err)
	})

	server, err := api.NewServer(cfg, api.Dependencies{
		Service:  orch.Service(),
		Catalog:  orch.Catalog(),
		Events:   orch.SubscribeAllEvents(),
		Gatherer: prometheus.DefaultGatherer,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdownChan:
		logger.Infof("Received signal %v, shutting down", sig)
	}

	timeout := cfg.App.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}
