package commands

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	intconfig "github.com/qmod-labs/qmod/internal/config"
)

//go:embed templates
var templateFS embed.FS

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new qmod project",
		Long: `Initialize a new qmod project with default structure and configuration.

This creates:
  - qmod.yaml configuration file
  - model.json model document skeleton
  - geometry.json geometry document with a substrate box
  - macros/ directory with an example Starlark macro`,
		Example: `  # Initialize in current directory
  qmod init

  # Initialize in a new directory
  qmod init my-device

  # Force overwrite existing config
  qmod init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			c := NewCommandContext(cmd)
			return runInit(c, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(c *CommandContext, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if existing := intconfig.FindConfigFile(dir); existing != "" && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", filepath.Base(existing))
	}

	files, err := copyTemplate("minimal", dir, force)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	// Read the scaffold back through the project loader.
	pc, err := intconfig.LoadFromDir(dir)
	if err != nil {
		return fmt.Errorf("scaffolded config is invalid: %w", err)
	}
	if pc == nil {
		return fmt.Errorf("scaffolding did not produce a config file in %s", dir)
	}

	for _, f := range files {
		c.Renderer.Success(f)
	}
	c.Renderer.Println("")
	c.Renderer.Printf("Project initialized (model document: %s). Next steps:\n", pc.ModelPath)
	c.Renderer.Println("  qmod params set gate_gap=50")
	c.Renderer.Println("  qmod table")
	c.Renderer.Println("  qmod macro list")
	return nil
}

// copyTemplate writes the named embedded template tree into dir and returns
// the created paths relative to dir. Existing files are left alone unless
// force is set.
func copyTemplate(name, dir string, force bool) ([]string, error) {
	root := "templates/" + name
	var created []string

	err := fs.WalkDir(templateFS, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		dest := filepath.Join(dir, rel)
		if d.IsDir() {
			return os.MkdirAll(dest, 0750)
		}

		if _, err := os.Stat(dest); err == nil && !force {
			return nil
		}
		data, err := templateFS.ReadFile(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dest, data, 0600); err != nil {
			return err
		}
		created = append(created, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
