// Package config loads the settings shared by the strike tools.
//
// Configuration is layered, lowest priority first:
//
//  1. Defaults (Default)
//  2. An optional YAML file, named by STRIKE_CONFIG or passed to Load
//  3. Environment variables (STRIKE_GRID_SIZE, STRIKE_LOG_LEVEL, ...)
//
// The merged result is validated with struct tags before it is returned.
// Positional command-line arguments (such as the generator's grid size)
// are applied by the caller on top of the loaded configuration.
package config
