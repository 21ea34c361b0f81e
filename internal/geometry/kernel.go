package geometry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ironsheep/strike-planner/internal/targets"
)

// Epsilon is the absolute tolerance used by ApproxEqual.
const Epsilon = 1e-6

// Vec promotes a grid point to a floating-point vector.
func Vec(p targets.Point) r2.Vec {
	return r2.Vec{X: float64(p.X), Y: float64(p.Y)}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// PointDistance returns the Euclidean distance between two grid points.
func PointDistance(a, b targets.Point) float64 {
	return Distance(Vec(a), Vec(b))
}

// ApproxEqual reports whether f1 and f2 differ by less than Epsilon.
func ApproxEqual(f1, f2 float64) bool {
	return math.Abs(f1-f2) < Epsilon
}

// Within reports whether d is at most limit, counting values within Epsilon
// of limit as inside.
func Within(d, limit float64) bool {
	return d < limit || ApproxEqual(d, limit)
}

// LineDistance returns the perpendicular distance from c to the line through
// p1 and p2, where distance is |p1p2|. A zero distance yields 0 for every c.
func LineDistance(c, p1, p2 r2.Vec, distance float64) float64 {
	if distance == 0 {
		return 0
	}
	return math.Abs(r2.Cross(r2.Sub(p2, p1), r2.Sub(c, p1))) / distance
}

// SnapToGrid maps the continuous circle center (x, y), built from the pair
// p1, p2 that lie distance apart, onto an integer grid position.
func SnapToGrid(x, y float64, p1, p2 targets.Point, distance float64) targets.Point {
	if x == math.Trunc(x) && y == math.Trunc(y) {
		return targets.Point{X: int(x), Y: int(y)}
	}

	fx, fy := math.Floor(x), math.Floor(y)
	cx, cy := math.Ceil(x), math.Ceil(y)
	corners := [4]r2.Vec{
		{X: fx, Y: fy},
		{X: fx, Y: cy},
		{X: cx, Y: fy},
		{X: cx, Y: cy},
	}

	a, b := Vec(p1), Vec(p2)
	var lengths [4]float64
	order := []int{0, 1, 2, 3}
	for i, c := range corners {
		lengths[i] = LineDistance(c, a, b, distance)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return lengths[order[i]] > lengths[order[j]]
	})

	picked := corners[order[1]]
	return targets.Point{X: int(picked.X), Y: int(picked.Y)}
}
