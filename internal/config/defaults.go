package config

// Default configuration values.
const (
	DefaultModelFile    = "model.json"
	DefaultGeometryFile = "geometry.json"
	DefaultMacrosDir    = "macros"
	DefaultEnergyUnit   = "meV"
)

// ApplyDefaults applies default values to a ProjectConfig.
func ApplyDefaults(c *ProjectConfig) {
	if c == nil {
		return
	}
	if c.ModelPath == "" {
		c.ModelPath = DefaultModelFile
	}
	if c.GeometryPath == "" {
		c.GeometryPath = DefaultGeometryFile
	}
	if c.MacrosDir == "" {
		c.MacrosDir = DefaultMacrosDir
	}
	if c.EnergyUnit == "" {
		c.EnergyUnit = DefaultEnergyUnit
	}
}
