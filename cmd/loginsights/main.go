package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log-insights/internal/app"
	"log-insights/internal/shared/configs"
)

func main() {
	configPath := flag.String("config", "./configs/configs.yml", "path to the YAML config file")
	inputPath := flag.String("input", "", "override the configured input file path")
	flag.Parse()

	// Load configuration
	cfg, err := configs.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *inputPath != "" {
		cfg.Input.Path = *inputPath
	}

	// Initialize application
	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	// SIGINT/SIGTERM cancels the run
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application.StartOpsServer()

	runErr := application.Run(ctx)

	// Graceful shutdown of the ops listener and run history
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := application.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Shutdown failed: %v\n", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Run failed: %v\n", runErr)
		os.Exit(1)
	}
}
