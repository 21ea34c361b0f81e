package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/strike-planner/internal/app"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) == 2 {
		switch os.Args[1] {
		case "--version", "-v":
			fmt.Printf("strike-mapgen %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h":
			fmt.Println("strike-mapgen - generate a random target map")
			fmt.Println()
			fmt.Println("Usage: strike-mapgen [count] [gridSize]")
			fmt.Println()
			fmt.Println("  count      Number of targets (default 10)")
			fmt.Println("  gridSize   Side of the square grid (default 100)")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  STRIKE_CONFIG=path.yaml        Load settings from a YAML file")
			fmt.Println("  STRIKE_OUTPUT_FILE=coords.txt  Output file")
			fmt.Println("  STRIKE_SEED=42                 Fixed seed for reproducible maps")
			return
		}
	}

	os.Exit(app.RunGenerator(os.Args[1:], os.Stdout, os.Stderr))
}
