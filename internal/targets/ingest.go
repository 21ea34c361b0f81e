package targets

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrNoTargets is returned when ingestion yields no points, either because
	// the input is empty or because a line was rejected.
	ErrNoTargets = errors.New("no targets")

	// ErrUnreadable is returned when the target map cannot be opened or read.
	ErrUnreadable = errors.New("target map unreadable")
)

// Load opens the target map at path and parses it with Parse.
//
// Errors wrap ErrUnreadable when the file cannot be opened or read, and
// ErrNoTargets when it holds no acceptable points.
func Load(path string, gridSize int) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()

	return Parse(f, gridSize)
}

// Parse reads newline-delimited "x,y" pairs from r.
//
// Points are returned in arrival order. The first malformed or out-of-grid
// line discards everything accepted so far; the returned slice is then nil
// and the error wraps ErrNoTargets.
func Parse(r io.Reader, gridSize int) ([]Point, error) {
	if gridSize <= 0 {
		return nil, fmt.Errorf("invalid grid size %d", gridSize)
	}

	var points []Point
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		p, err := parseLine(line, gridSize)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrNoTargets, lineNo, err)
		}
		points = append(points, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%w: empty target map", ErrNoTargets)
	}

	return points, nil
}

// parseLine decodes a single "x,y" pair and checks it against the grid.
func parseLine(line string, gridSize int) (Point, error) {
	xs, ys, ok := strings.Cut(line, ",")
	if !ok {
		return Point{}, fmt.Errorf("%q is not an x,y pair", line)
	}

	x, err := parseCoordinate(xs, gridSize)
	if err != nil {
		return Point{}, fmt.Errorf("x in %q: %w", line, err)
	}
	y, err := parseCoordinate(ys, gridSize)
	if err != nil {
		return Point{}, fmt.Errorf("y in %q: %w", line, err)
	}

	return Point{X: x, Y: y}, nil
}

func parseCoordinate(s string, gridSize int) (int, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	if v >= uint64(gridSize) {
		return 0, fmt.Errorf("%d outside grid of size %d", v, gridSize)
	}
	return int(v), nil
}
