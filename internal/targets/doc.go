// Package targets holds the target points a strike is planned against.
//
// A target map is a plain text file of comma-separated unsigned integer
// pairs, one "x,y" per line, with no header:
//
//	12,40
//	99,0
//	12,40
//
// # Coordinate System
//
// Coordinates are 0-based on a square grid of side GridSize:
//   - Valid X range: 0 to GridSize-1
//   - Valid Y range: 0 to GridSize-1
//
// Duplicate points are kept. A target listed twice weighs twice when
// coverage is counted.
//
// # Ingestion Policy
//
// Parse is all-or-nothing. The first line that does not parse, or whose
// coordinates fall outside the grid, aborts ingestion: every point accepted
// so far is dropped and ErrNoTargets is returned together with an empty
// slice. An input with no points at all yields ErrNoTargets as well.
//
// # Generation
//
// Generate draws targets uniformly from the grid and Write emits them in the
// same line format Parse accepts, so generated maps round-trip.
//
// # Caching
//
// Cache keeps parsed maps keyed by path and grid size for long-lived
// processes such as the MCP server. It is safe for concurrent use.
package targets
