// Package geometry provides the pure floating-point kernel of the strike
// planner: distances, tolerance comparisons and the rule that snaps a
// continuous circle center onto the integer grid.
//
// Vectors are gonum r2.Vec values. Target points are promoted from integer
// grid coordinates with Vec.
//
// # Tolerance
//
// Boundary conditions are compared with ApproxEqual, which treats values
// closer than Epsilon as equal. A target exactly radius away from a center is
// covered, and two targets exactly 2*radius apart still define one (tangent)
// circle center.
//
// # Grid Snapping
//
// SnapToGrid keeps integer positions as they are. Otherwise it ranks the four
// floor/ceil corners around the position by their perpendicular distance to
// the line through the pair of targets that defined the circle, farthest
// first, and picks the corner ranked second. Ties keep the corner order
// floor-floor, floor-ceil, ceil-floor, ceil-ceil.
//
// Note that the selected corner is the second-ranked one, not the nearest
// or the farthest from the chord.
package geometry
