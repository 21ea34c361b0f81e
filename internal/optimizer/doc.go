// Package optimizer finds the grid position from which a strike of a given
// radius covers the most targets.
//
// # Algorithm
//
// The continuous problem (place a circle of radius r to cover the most
// points) has an optimum whose boundary passes through two targets, so the
// search reduces to a finite candidate set:
//
//  1. Baseline: the first target, scored by its own coverage.
//  2. For every unordered pair (p1, p2) no more than 2r apart, construct the
//     circle centers of radius r passing through both: the chord midpoint
//     offset by h = sqrt(r² - (d/2)²) along the perpendicular, positive sign
//     first. Coincident targets give the single candidate p1; a tangent pair
//     (d = 2r) gives the midpoint.
//  3. Drop candidates with a negative coordinate, snap the rest onto the grid
//     with geometry.SnapToGrid and count the covered targets.
//  4. Keep a candidate only if it covers strictly more targets than the best
//     so far, so ties go to the candidate found first.
//
// Pairs are enumerated in input order (i < j), which makes the result fully
// deterministic for a given target list and radius. The search is O(n³) in
// the number of targets.
//
// # Fast Path
//
// When r is at least half the grid diagonal, a strike at the grid center
// covers every cell. The pairwise search is skipped and the result is the
// grid center with every target counted.
//
// # Coverage
//
// A target is covered when its distance to the center is below r or within
// geometry.Epsilon of it.
package optimizer
