// Package render draws strike maps: PNG images of the target grid showing
// how many targets a strike centered on each cell would cover, where the
// targets are, and the chosen strike with its blast circle.
//
// # Coordinate System
//
// One grid cell maps to Scale x Scale pixels. Cell (0,0) is the top-left
// corner, X increases rightward and Y increases downward, so a map reads the
// same way as the coordinates in a target file.
//
// # Layers
//
// Layers are drawn bottom to top:
//   - Coverage heat: each cell is shaded on an HCL ramp from the coldest
//     color (no targets in reach) to the hottest (the best coverage on the map)
//   - Grid overlay: lines every GridSpacing cells with optional coordinate
//     labels in a 3x5 pixel font
//   - Blast circle: outline of the strike radius around the strike center
//   - Targets: filled cell markers; duplicates are drawn once
//   - Strike center: a crosshair
//
// # Output
//
// Encode returns the map as base64 PNG for protocol responses; Save writes
// it to disk.
package render
