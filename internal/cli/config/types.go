// Package config provides configuration management for the qmod CLI.
//
// The CLI Config extends the shared project configuration from
// internal/config with CLI-only fields such as the run-history state path
// and the output format.
package config

import (
	sharedcfg "github.com/qmod-labs/qmod/internal/config"
)

// Config holds all CLI configuration options.
type Config struct {
	ModelPath       string `koanf:"model"`
	GeometryPath    string `koanf:"geometry"`
	MacrosDir       string `koanf:"macros_dir"`
	MaterialsPath   string `koanf:"materials"`
	EnergyUnit      string `koanf:"energy_unit"`
	StatePath       string `koanf:"state_path"`
	SpreadsheetName string `koanf:"spreadsheet"`
	Verbose         bool   `koanf:"verbose"`
	OutputFormat    string `koanf:"output"`

	// ProjectRoot is the directory relative paths resolve against. It is
	// inferred at load time, never read from the config file.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultModelFile   = sharedcfg.DefaultModelFile
	DefaultMacrosDir   = sharedcfg.DefaultMacrosDir
	DefaultEnergyUnit  = sharedcfg.DefaultEnergyUnit
	DefaultGeometry    = sharedcfg.DefaultGeometryFile
	DefaultStateFile   = ".qmod/state.db"
	DefaultSpreadsheet = "modelParams"
	DefaultOutput      = "auto" // Auto-detect: TTY=table, non-TTY=markdown
)
