package app

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ironsheep/strike-planner/internal/config"
	"github.com/ironsheep/strike-planner/internal/logging"
	"github.com/ironsheep/strike-planner/internal/targets"
)

// DefaultTargetCount is the number of targets generated when no count is given.
const DefaultTargetCount = 10

// RunGenerator runs the map generator CLI. args are the optional positional
// arguments (count, gridSize) without the program name.
func RunGenerator(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load("")
	if err != nil {
		return fail(stderr, newError(InvalidConfig, err))
	}

	logger, err := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fail(stderr, newError(InvalidConfig, err))
	}
	defer logger.Sync() //nolint:errcheck

	count, gridSize, err := GenerateMap(cfg, logger, args)
	if err != nil {
		return fail(stderr, err)
	}

	fmt.Fprintf(stdout, "Map of %d target(s) with size = %d generated successfully\n", count, gridSize)
	return 0
}

// GenerateMap writes a random target map to cfg.OutputFile and returns the
// target count and grid size used.
func GenerateMap(cfg *config.Config, logger *zap.Logger, args []string) (int, int, error) {
	if len(args) > 2 {
		return 0, 0, newError(InvalidArguments,
			fmt.Errorf("usage: strike-mapgen [count] [gridSize], got %d argument(s)", len(args)))
	}

	count := DefaultTargetCount
	gridSize := cfg.GridSize
	if len(args) >= 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return 0, 0, newError(InvalidArguments, fmt.Errorf("count %q must be a non-negative integer", args[0]))
		}
		count = n
	}
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return 0, 0, newError(InvalidArguments, fmt.Errorf("gridSize %q must be a positive integer", args[1]))
		}
		gridSize = n
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	points, err := targets.Generate(targets.NewSource(seed), count, gridSize)
	if err != nil {
		return 0, 0, newError(InvalidArguments, err)
	}

	if err := targets.WriteFile(cfg.OutputFile, points); err != nil {
		return 0, 0, newError(WriteFailed, err)
	}

	logger.Info("target map generated",
		zap.String("path", cfg.OutputFile),
		zap.Int("targets", count),
		zap.Int("grid_size", gridSize),
		zap.Uint64("seed", seed),
	)
	return count, gridSize, nil
}
