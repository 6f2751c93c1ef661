// Package config defines runtime configuration for the gathermedata CLI.
//
// Configuration is layered: defaults, then an optional YAML file, then
// GATHERMEDATA_* environment variables, then command-line flags. Later
// layers win.
package config
