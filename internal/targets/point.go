package targets

import "fmt"

const (
	// DefaultGridSize is the side of the square grid when none is configured.
	DefaultGridSize = 100

	// MaxGridSize is the largest grid side accepted from configuration or
	// clients.
	MaxGridSize = 1 << 16

	// MaxTargetCount is the largest map Generate produces.
	MaxTargetCount = 1 << 20
)

// Point is a single target on the grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String formats the point the way it appears in a target map.
func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// InGrid reports whether both coordinates lie in [0, gridSize).
func (p Point) InGrid(gridSize int) bool {
	return p.X >= 0 && p.X < gridSize && p.Y >= 0 && p.Y < gridSize
}
