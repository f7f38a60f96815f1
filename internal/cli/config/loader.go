package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	intconfig "github.com/qmod-labs/qmod/internal/config"
)

// loggerKey is used to store logger in context.
// This key is shared with root.go via both using the same type.
type loggerKey struct{}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config // Stores the loaded config for access by commands
)

// inferProjectRoot determines the project root from CLI flags and filesystem.
// Priority:
//  1. Explicit --project-dir flag
//  2. Infer from --model (its directory, when it holds a config file)
//  3. Search upward from CWD for qmod.yaml
//  4. Current working directory
func inferProjectRoot(flags *pflag.FlagSet) string {
	// 1. Check explicit --project-dir
	if flags != nil {
		if projectDir, _ := flags.GetString("project-dir"); projectDir != "" && flags.Changed("project-dir") {
			abs, err := filepath.Abs(projectDir)
			if err == nil {
				return abs
			}
			return filepath.Clean(projectDir)
		}
	}

	// 2. Infer from --model
	if flags != nil {
		if modelPath, _ := flags.GetString("model"); modelPath != "" && flags.Changed("model") {
			absModel, err := filepath.Abs(modelPath)
			if err == nil {
				parent := filepath.Dir(absModel)
				if intconfig.FindConfigFile(parent) != "" {
					return parent
				}
			}
		}
	}

	// 3. Search upward from CWD for qmod.yaml
	if cwd, err := os.Getwd(); err == nil {
		if root := intconfig.FindProjectRoot(cwd); root != "" {
			return root
		}
	}

	// 4. Default to CWD
	cwd, _ := os.Getwd()
	if cwd == "" {
		cwd = "."
	}
	return cwd
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	// Infer project root from flags before loading config
	projectRoot := inferProjectRoot(flags)

	// Track paths that were explicitly provided as flags (already relative
	// to CWD). These are converted to absolute paths up front to prevent
	// double-resolution when project root was inferred from them.
	var flagModel, flagGeometry, flagMacrosDir, flagMaterials, flagStatePath string
	if flags != nil {
		if flags.Changed("model") {
			if v, _ := flags.GetString("model"); v != "" {
				flagModel, _ = filepath.Abs(v)
			}
		}
		if flags.Changed("geometry") {
			if v, _ := flags.GetString("geometry"); v != "" {
				flagGeometry, _ = filepath.Abs(v)
			}
		}
		if flags.Changed("macros-dir") {
			if v, _ := flags.GetString("macros-dir"); v != "" {
				flagMacrosDir, _ = filepath.Abs(v)
			}
		}
		if flags.Changed("materials") {
			if v, _ := flags.GetString("materials"); v != "" {
				flagMaterials, _ = filepath.Abs(v)
			}
		}
		if flags.Changed("state") {
			if v, _ := flags.GetString("state"); v != "" {
				flagStatePath, _ = filepath.Abs(v)
			}
		}
	}

	// If an explicit config file is provided, use its directory as project
	// root (unless a more specific hint was given via flags)
	if cfgFile != "" && projectRoot == inferProjectRoot(nil) {
		if absPath, err := filepath.Abs(cfgFile); err == nil {
			projectRoot = filepath.Dir(absPath)
		}
	}

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"model":       DefaultModelFile,
		"geometry":    DefaultGeometry,
		"macros_dir":  DefaultMacrosDir,
		"energy_unit": DefaultEnergyUnit,
		"state_path":  DefaultStateFile,
		"spreadsheet": DefaultSpreadsheet,
		"verbose":     false,
		"output":      DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Load the project config file. An explicit --config path is read
	// directly; otherwise the project root is consulted.
	configFileUsed = cfgFile
	if configFileUsed == "" {
		configFileUsed = intconfig.FindConfigFile(projectRoot)
	}
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (QMOD_ prefix)
	// Transform: QMOD_MACROS_DIR -> macros_dir
	if err := k.Load(env.Provider("QMOD_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "QMOD_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			// Transform kebab-case to snake_case for config keys
			key := strings.ReplaceAll(f.Name, "-", "_")

			// The CLI uses --state for brevity, but the config struct
			// uses state_path for clarity
			if key == "state" {
				return "state_path", posflag.FlagVal(flags, f)
			}

			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. Set project root and resolve relative paths
	cfg.ProjectRoot = projectRoot

	// For paths explicitly provided via flags, use the pre-computed
	// absolute paths. For paths from config file or defaults, resolve
	// relative to project root.
	if flagModel != "" {
		cfg.ModelPath = flagModel
	} else {
		cfg.ModelPath = resolvePathRelativeTo(cfg.ModelPath, projectRoot)
	}
	if flagGeometry != "" {
		cfg.GeometryPath = flagGeometry
	} else {
		cfg.GeometryPath = resolvePathRelativeTo(cfg.GeometryPath, projectRoot)
	}
	if flagMacrosDir != "" {
		cfg.MacrosDir = flagMacrosDir
	} else {
		cfg.MacrosDir = resolvePathRelativeTo(cfg.MacrosDir, projectRoot)
	}
	if flagMaterials != "" {
		cfg.MaterialsPath = flagMaterials
	} else {
		cfg.MaterialsPath = resolvePathRelativeTo(cfg.MaterialsPath, projectRoot)
	}
	if flagStatePath != "" {
		cfg.StatePath = flagStatePath
	} else {
		cfg.StatePath = resolvePathRelativeTo(cfg.StatePath, projectRoot)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Store config for access by commands
	currentConfig = &cfg

	return &cfg, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
