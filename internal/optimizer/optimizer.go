package optimizer

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ironsheep/strike-planner/internal/geometry"
	"github.com/ironsheep/strike-planner/internal/targets"
)

var (
	// ErrNoTargets is returned by Optimize for an empty target list.
	ErrNoTargets = errors.New("no targets to strike")

	// ErrInvalidRadius is returned by Optimize for a radius that is not positive.
	ErrInvalidRadius = errors.New("strike radius must be positive")
)

type options struct {
	logger *zap.Logger
}

// Option configures an Optimizer.
type Option func(*options)

// WithLogger sets the logger search statistics are reported to.
// If nil is passed, logging is disabled.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = zap.NewNop()
		}
		o.logger = logger
	}
}

// Optimizer answers strike queries on a square grid of a fixed size.
// It holds no state between queries.
type Optimizer struct {
	gridSize int
	logger   *zap.Logger
}

// New creates an Optimizer for a gridSize x gridSize grid.
func New(gridSize int, optFns ...Option) *Optimizer {
	opts := options{logger: zap.NewNop()}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Optimizer{
		gridSize: gridSize,
		logger:   opts.logger,
	}
}

// GridSize returns the side of the grid the optimizer works on.
func (o *Optimizer) GridSize() int {
	return o.gridSize
}

// FastPathRadius returns the radius from which a strike at the grid center
// covers the whole gridSize x gridSize grid.
func FastPathRadius(gridSize int) float64 {
	return float64(gridSize) * 0.5 * math.Sqrt2
}

// GridCenter returns the center cell of a gridSize x gridSize grid.
func GridCenter(gridSize int) targets.Point {
	return targets.Point{X: gridSize / 2, Y: gridSize / 2}
}

// Optimize returns the grid position covering the most points within radius.
//
// points is read but never modified. It must be non-empty and radius must
// be positive; otherwise ErrNoTargets or ErrInvalidRadius is returned.
func (o *Optimizer) Optimize(points []targets.Point, radius float64) (Result, error) {
	if len(points) == 0 {
		return Result{}, ErrNoTargets
	}
	if !(radius > 0) {
		return Result{}, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}

	var res Result
	if radius >= FastPathRadius(o.gridSize) {
		res = Result{
			Center:   GridCenter(o.gridSize),
			Count:    len(points),
			Total:    len(points),
			FastPath: true,
		}
	} else {
		res = o.search(points, radius)
	}

	o.logger.Debug("strike optimized",
		zap.Int("targets", res.Total),
		zap.Float64("radius", radius),
		zap.Int("grid_size", o.gridSize),
		zap.Bool("fast_path", res.FastPath),
		zap.Int("pairs_examined", res.PairsExamined),
		zap.Int("candidates_scored", res.CandidatesScored),
		zap.Int("x", res.Center.X),
		zap.Int("y", res.Center.Y),
		zap.Int("count", res.Count),
		zap.Float64("efficiency_percent", res.Efficiency()),
	)

	return res, nil
}

// search runs the pairwise candidate enumeration.
func (o *Optimizer) search(points []targets.Point, radius float64) Result {
	best := Result{
		Center: points[0],
		Count:  Coverage(points, points[0], radius),
		Total:  len(points),
	}
	diameter := 2 * radius

	consider := func(c targets.Point) {
		best.CandidatesScored++
		if n := Coverage(points, c, radius); n > best.Count {
			best.Center = c
			best.Count = n
		}
	}

	for i := range points {
		p1 := points[i]
		a := geometry.Vec(p1)
		for j := i + 1; j < len(points); j++ {
			p2 := points[j]
			b := geometry.Vec(p2)

			d := geometry.Distance(a, b)
			if !geometry.Within(d, diameter) {
				continue
			}
			best.PairsExamined++

			if d == 0 {
				consider(p1)
				continue
			}

			for _, c := range circleCenters(a, b, d, radius) {
				if c.X < 0 || c.Y < 0 {
					continue
				}
				consider(geometry.SnapToGrid(c.X, c.Y, p1, p2, d))
			}
		}
	}

	return best
}

// circleCenters returns the two centers of radius-r circles through a and b,
// which lie d > 0 apart. The positive offset comes first. For a tangent pair
// both centers are the chord midpoint.
func circleCenters(a, b r2.Vec, d, radius float64) [2]r2.Vec {
	h2 := radius*radius - 0.25*d*d
	if h2 < 0 {
		// d exceeds the diameter by less than geometry.Epsilon.
		h2 = 0
	}
	h := math.Sqrt(h2)

	mid := r2.Scale(0.5, r2.Add(a, b))
	perp := r2.Vec{X: a.Y - b.Y, Y: b.X - a.X}

	return [2]r2.Vec{
		r2.Add(mid, r2.Scale(h/d, perp)),
		r2.Add(mid, r2.Scale(-h/d, perp)),
	}
}

// Coverage counts the points within radius of center.
func Coverage(points []targets.Point, center targets.Point, radius float64) int {
	c := geometry.Vec(center)
	n := 0
	for _, p := range points {
		if geometry.Within(geometry.Distance(c, geometry.Vec(p)), radius) {
			n++
		}
	}
	return n
}

// CoveredPoints returns the points within radius of center, in input order.
func CoveredPoints(points []targets.Point, center targets.Point, radius float64) []targets.Point {
	c := geometry.Vec(center)
	covered := make([]targets.Point, 0, len(points))
	for _, p := range points {
		if geometry.Within(geometry.Distance(c, geometry.Vec(p)), radius) {
			covered = append(covered, p)
		}
	}
	return covered
}
