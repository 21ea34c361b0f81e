package optimizer

import (
	"fmt"

	"github.com/ironsheep/strike-planner/internal/targets"
)

// Result is the outcome of one strike query.
type Result struct {
	// Center is the strike position snapped onto the grid.
	Center targets.Point `json:"center"`

	// Count is the number of targets covered from Center.
	Count int `json:"count"`

	// Total is the number of targets the query ran against.
	Total int `json:"total"`

	// FastPath is set when the radius covers the whole grid and the pairwise
	// search was skipped.
	FastPath bool `json:"fast_path"`

	// PairsExamined counts target pairs close enough to define a circle.
	PairsExamined int `json:"pairs_examined"`

	// CandidatesScored counts snapped candidate centers that were scored.
	CandidatesScored int `json:"candidates_scored"`
}

// Efficiency returns the share of targets covered, in percent.
func (r Result) Efficiency() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Count) / float64(r.Total) * 100
}

// String renders the result in the report format of the strike CLI.
func (r Result) String() string {
	return fmt.Sprintf("Optimal coordinates are {%d, %d} with %d target(s) to destroy.",
		r.Center.X, r.Center.Y, r.Count)
}
