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
			fmt.Printf("strike %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h":
			fmt.Println("strike - find the strike position covering the most targets")
			fmt.Println()
			fmt.Println("Usage: strike <coordsFile> <radius>")
			fmt.Println()
			fmt.Println("  coordsFile   File with one \"x,y\" target per line")
			fmt.Println("  radius       Strike radius in grid units (positive number)")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  STRIKE_CONFIG=path.yaml      Load settings from a YAML file")
			fmt.Println("  STRIKE_GRID_SIZE=100         Side of the square target grid")
			fmt.Println("  STRIKE_LOG_LEVEL=debug       Log level (debug, info, warn, error)")
			fmt.Println("  STRIKE_LOG_FORMAT=json       Log format (console, json)")
			fmt.Println("  STRIKE_RENDER_PATH=map.png   Also save a PNG strike map")
			fmt.Println("  STRIKE_RENDER_SCALE=8        Pixels per grid cell in the strike map")
			fmt.Println("  STRIKE_GRID_SPACING=10       Cells between grid lines, 0 for none")
			return
		}
	}

	os.Exit(app.RunOptimizer(os.Args[1:], os.Stdout, os.Stderr))
}
