// Package app wires configuration, logging, ingestion, the optimizer and the
// renderer into the two command-line tools:
//
//   - strike <coordsFile> <radius>: prints
//     "Optimal coordinates are {x, y} with k target(s) to destroy."
//   - strike-mapgen [count] [gridSize]: writes a random target map
//
// Every failure is fatal. The diagnostic for the error's Kind is printed on
// stderr and the run exits with status 1 without a report. The optimizer CLI
// checks, in order: argument count, target map readability, target map
// contents, radius.
package app
