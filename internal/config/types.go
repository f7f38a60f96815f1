// Package config provides shared configuration types for qmod.
// This package is decoupled from CLI concerns and can be used by tools that
// need to locate a project and its model document without the full CLI.
package config

// ProjectConfig holds the minimal project configuration shared by tools.
type ProjectConfig struct {
	// ModelPath is the model document file, relative to the project root
	// unless absolute.
	ModelPath string `koanf:"model"`

	// GeometryPath is the geometry document the host operations work on.
	GeometryPath string `koanf:"geometry"`

	// MacrosDir holds the .star macro files.
	MacrosDir string `koanf:"macros_dir"`

	// MaterialsPath points at a materials database file. Empty means the
	// built-in dataset.
	MaterialsPath string `koanf:"materials"`

	// EnergyUnit is the unit material energy properties are reported in.
	EnergyUnit string `koanf:"energy_unit"`
}
