package targets

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
)

// Generate draws count targets uniformly from a gridSize x gridSize grid.
// X is drawn before Y for every target, so a seeded source reproduces the
// same map.
func Generate(rng *rand.Rand, count, gridSize int) ([]Point, error) {
	if count < 0 || count > MaxTargetCount {
		return nil, fmt.Errorf("target count %d outside 0-%d", count, MaxTargetCount)
	}
	if gridSize <= 0 || gridSize > MaxGridSize {
		return nil, fmt.Errorf("grid size %d outside 1-%d", gridSize, MaxGridSize)
	}

	points := make([]Point, 0, count)
	for i := 0; i < count; i++ {
		x := rng.IntN(gridSize)
		y := rng.IntN(gridSize)
		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}

// NewSource returns a generator seeded with seed. The same seed always yields
// the same sequence of targets.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Write emits points as "x,y\n" lines.
func Write(w io.Writer, points []Point) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		if _, err := fmt.Fprintf(bw, "%d,%d\n", p.X, p.Y); err != nil {
			return fmt.Errorf("failed to write target: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush targets: %w", err)
	}
	return nil
}

// WriteFile creates (or truncates) path and writes points to it.
func WriteFile(path string, points []Point) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create target map: %w", err)
	}

	if err := Write(f, points); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
