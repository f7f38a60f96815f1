// Package commands implements the qmod subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qmod-labs/qmod/internal/cli/config"
	"github.com/qmod-labs/qmod/internal/cli/output"
	"github.com/qmod-labs/qmod/internal/host"
	"github.com/qmod-labs/qmod/internal/state"
	"github.com/qmod-labs/qmod/pkg/material"
	"github.com/qmod-labs/qmod/pkg/model"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's config and
// context. It does not open the model or any database; commands pull in what
// they need via the load helpers below.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	return &config.Config{
		ModelPath:       getEnvOrDefault("QMOD_MODEL", config.DefaultModelFile),
		GeometryPath:    getEnvOrDefault("QMOD_GEOMETRY", config.DefaultGeometry),
		MacrosDir:       getEnvOrDefault("QMOD_MACROS_DIR", config.DefaultMacrosDir),
		MaterialsPath:   os.Getenv("QMOD_MATERIALS"),
		EnergyUnit:      getEnvOrDefault("QMOD_ENERGY_UNIT", config.DefaultEnergyUnit),
		StatePath:       getEnvOrDefault("QMOD_STATE_PATH", config.DefaultStateFile),
		SpreadsheetName: getEnvOrDefault("QMOD_SPREADSHEET", config.DefaultSpreadsheet),
		Verbose:         os.Getenv("QMOD_VERBOSE") == "true",
		OutputFormat:    getEnvOrDefault("QMOD_OUTPUT", config.DefaultOutput),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// loadModel reads the configured model document. The file must exist.
func (c *CommandContext) loadModel() (*model.Document, error) {
	doc, err := model.Load(c.Cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("load model: %w\nHint: run 'qmod init' to create a project", err)
	}
	return doc, nil
}

// loadOrInitModel reads the configured model document, starting from an
// empty one when the file does not exist yet.
func (c *CommandContext) loadOrInitModel() (*model.Document, error) {
	doc, err := model.LoadOrInit(c.Cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	return doc, nil
}

// openMaterials opens the configured materials database, falling back to the
// built-in database when no path is configured.
func (c *CommandContext) openMaterials() (*material.Database, error) {
	if c.Cfg.MaterialsPath == "" {
		return material.Builtin(), nil
	}
	db, err := material.LoadDatabase(c.Cfg.MaterialsPath)
	if err != nil {
		return nil, fmt.Errorf("load materials database: %w", err)
	}
	return db, nil
}

// openGeometry loads the configured geometry document. The file must exist.
func (c *CommandContext) openGeometry() (*host.MemDocument, error) {
	doc, err := host.LoadMemDocument(c.Cfg.GeometryPath)
	if err != nil {
		return nil, fmt.Errorf("load geometry: %w", err)
	}
	return doc, nil
}

// openStore opens the run history store, creating it on first use.
func (c *CommandContext) openStore() (*state.SQLiteStore, error) {
	store := state.NewSQLiteStore(c.Logger)
	if err := store.Open(c.Cfg.StatePath); err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init state store: %w", err)
	}
	return store, nil
}

// parseFloatList parses a comma-separated list of numbers ("1.0,2.5,3").
func parseFloatList(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("empty value in list %q", s)
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		values = append(values, v)
	}
	return values, nil
}

// parseNameList splits a comma-separated list of names, trimming whitespace.
func parseNameList(s string) []string {
	parts := strings.Split(s, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
