package app

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/ironsheep/strike-planner/internal/config"
	"github.com/ironsheep/strike-planner/internal/logging"
	"github.com/ironsheep/strike-planner/internal/optimizer"
	"github.com/ironsheep/strike-planner/internal/render"
	"github.com/ironsheep/strike-planner/internal/targets"
)

// RunOptimizer runs the strike CLI. args are the positional arguments
// (coordsFile, radius) without the program name. The report goes to stdout,
// diagnostics and logs to stderr. It returns the process exit code.
func RunOptimizer(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load("")
	if err != nil {
		return fail(stderr, newError(InvalidConfig, err))
	}

	logger, err := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fail(stderr, newError(InvalidConfig, err))
	}
	defer logger.Sync() //nolint:errcheck

	res, err := Strike(cfg, logger, args)
	if err != nil {
		logger.Debug("strike aborted", zap.String("kind", string(KindOf(err))), zap.Error(err))
		return fail(stderr, err)
	}

	fmt.Fprintln(stdout, res.String())
	return 0
}

// Strike validates args, loads the target map and runs the optimizer.
// When cfg.RenderPath is set the strike map is saved there as well.
func Strike(cfg *config.Config, logger *zap.Logger, args []string) (optimizer.Result, error) {
	if len(args) != 2 {
		return optimizer.Result{}, newError(InvalidArguments,
			fmt.Errorf("usage: strike <coordsFile> <radius>, got %d argument(s)", len(args)))
	}
	path, radiusArg := args[0], args[1]

	points, err := targets.Load(path, cfg.GridSize)
	if err != nil {
		if errors.Is(err, targets.ErrNoTargets) {
			return optimizer.Result{}, newError(EmptyOrCorruptTargetList, err)
		}
		return optimizer.Result{}, newError(FileUnreadable, err)
	}
	logger.Info("targets loaded",
		zap.String("path", path),
		zap.Int("targets", len(points)),
		zap.Int("grid_size", cfg.GridSize),
	)

	radius, err := parseRadius(radiusArg)
	if err != nil {
		return optimizer.Result{}, newError(InvalidRadius, err)
	}

	opt := optimizer.New(cfg.GridSize, optimizer.WithLogger(logger))
	res, err := opt.Optimize(points, radius)
	if err != nil {
		return optimizer.Result{}, newError(InvalidRadius, err)
	}

	if cfg.RenderPath != "" {
		if err := saveStrikeMap(cfg, points, res, radius); err != nil {
			return optimizer.Result{}, newError(WriteFailed, err)
		}
		logger.Info("strike map saved", zap.String("path", cfg.RenderPath))
	}

	return res, nil
}

// parseRadius accepts any finite positive number.
func parseRadius(s string) (float64, error) {
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("radius %q is not a number", s)
	}
	if !(r > 0) || math.IsInf(r, 0) {
		return 0, fmt.Errorf("radius %v must be a positive number", r)
	}
	return r, nil
}

func saveStrikeMap(cfg *config.Config, points []targets.Point, res optimizer.Result, radius float64) error {
	opts := render.DefaultOptions(cfg.GridSize)
	opts.Scale = cfg.RenderScale
	opts.GridSpacing = cfg.GridSpacing
	opts.ShowCoordinates = cfg.GridSpacing > 0
	opts.Caption = res.String()

	img, err := render.StrikeMap(points, res, radius, opts)
	if err != nil {
		return err
	}
	return render.Save(cfg.RenderPath, img)
}

// fail prints err as a diagnostic line and returns exit code 1.
func fail(stderr io.Writer, err error) int {
	fmt.Fprintln(stderr, err.Error())
	return 1
}
