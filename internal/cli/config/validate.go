package config

import (
	"fmt"
	"os"

	"github.com/qmod-labs/qmod/pkg/units"
)

// validOutputs are the accepted --output values.
var validOutputs = map[string]bool{
	"auto":     true,
	"table":    true,
	"text":     true,
	"json":     true,
	"csv":      true,
	"md":       true,
	"markdown": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ModelPath == "" {
		return fmt.Errorf("model is required")
	}
	if !validOutputs[c.OutputFormat] {
		return fmt.Errorf("unknown output format %q (use auto, table, json, csv or md)", c.OutputFormat)
	}
	if _, err := units.Parse(c.EnergyUnit); err != nil {
		return fmt.Errorf("invalid energy_unit: %w", err)
	}
	return nil
}

// ValidateMacrosDir checks if the macros directory exists.
func (c *Config) ValidateMacrosDir() error {
	if _, err := os.Stat(c.MacrosDir); os.IsNotExist(err) {
		return fmt.Errorf("macros directory does not exist: %s\nHint: Create the directory or use --macros-dir to specify a different path", c.MacrosDir)
	}
	return nil
}
