package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"

	"github.com/ldmerino/organizadorArchivos/internal/batch"
	"github.com/ldmerino/organizadorArchivos/internal/config"
	"github.com/ldmerino/organizadorArchivos/internal/extract"
	"github.com/ldmerino/organizadorArchivos/internal/identity"
	"github.com/ldmerino/organizadorArchivos/internal/logging"
	"github.com/ldmerino/organizadorArchivos/internal/mcp"
	"github.com/ldmerino/organizadorArchivos/internal/report"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func printVersion() {
	fmt.Printf("organizador %s\n", version)
	fmt.Printf("  build time: %s\n", buildTime)
	fmt.Printf("  git commit: %s\n", gitCommit)
	fmt.Printf("  go version: %s\n", runtime.Version())
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.IsStdioMode())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	extractor := extract.NewExtractor(logger)
	engine := batch.NewEngine(extractor, identity.NewExtractor(nil), cfg.MaxFileSize, logger)

	if cfg.IsStdioMode() {
		runStdioMode(cfg, engine, logger)
		return
	}
	runCLIMode(cfg, engine, logger)
}

// runStdioMode serves the MCP tools on stdio until the parent closes the
// stream.
func runStdioMode(cfg *config.Config, engine *batch.Engine, logger *zap.Logger) {
	srv, err := mcp.NewServer(cfg, engine)
	if err != nil {
		logger.Fatal("failed to create MCP server", zap.Error(err))
	}
	if err := srv.Run(context.Background()); err != nil {
		logger.Fatal("MCP server error", zap.Error(err))
	}
}

// runCLIMode executes one batch operation, relaying progress to the
// terminal. SIGINT requests cooperative cancellation; the unit in flight
// still finishes.
func runCLIMode(cfg *config.Config, engine *batch.Engine, logger *zap.Logger) {
	ctx := context.Background()

	run := engine.Start(ctx, batch.Config{
		Source:      cfg.Source,
		Destination: cfg.Destination,
		Mode:        batch.Mode(cfg.Operation),
	})

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signalCh
		logger.Warn("cancellation requested", zap.String("signal", sig.String()))
		run.Cancel()
	}()

	var results []batch.ProcessResult
	failed := false
	for ev := range run.Events() {
		switch ev.Type {
		case batch.EventProgress:
			logger.Info("progress", zap.Int("percent", ev.Progress))
		case batch.EventStatus:
			logger.Info(ev.Status)
		case batch.EventResults:
			results = ev.Results
		case batch.EventError:
			logger.Error("run failed", zap.String("error", ev.Err))
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
	if run.State() == batch.StateCancelled {
		fmt.Println("Run cancelled; no files were reported.")
		os.Exit(1)
	}

	printResults(results)

	if cfg.ReportPath != "" {
		if err := report.WriteXLSX(cfg.ReportPath, results); err != nil {
			logger.Error("failed to write report", zap.Error(err))
			os.Exit(1)
		}
		fmt.Printf("Report written to %s\n", cfg.ReportPath)
	}
}

func printResults(results []batch.ProcessResult) {
	for _, r := range results {
		if r.Success {
			fmt.Printf("  OK  %s -> %s (%s)\n", r.OriginalLabel, r.NewName, r.Identity)
		} else {
			fmt.Printf("  ERR %s: %s\n", r.OriginalLabel, r.Error)
		}
	}

	s := batch.Summarize(results)
	fmt.Printf("\n%d processed, %d successful, %d failed (%.1f%%), %d unique identities, %d units\n",
		s.Total, s.Successful, s.Failed, s.SuccessRate, s.UniqueIdentities, s.TotalUnits)
}
