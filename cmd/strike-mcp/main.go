package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ironsheep/strike-planner/internal/config"
	"github.com/ironsheep/strike-planner/internal/logging"
	"github.com/ironsheep/strike-planner/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("strike-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("strike-mcp - MCP server for strike planning")
			fmt.Println()
			fmt.Println("Usage: strike-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  STRIKE_CONFIG=path.yaml    Load settings from a YAML file")
			fmt.Println("  STRIKE_LOG_LEVEL=debug     Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client.")
			return
		}
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr, stdout is for MCP protocol
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Debug("starting strike MCP server",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit", GitCommit),
		zap.Int("grid_size", cfg.GridSize),
	)

	srv := server.New(cfg, logger)
	if err := srv.Serve(os.Stdin, os.Stdout); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
