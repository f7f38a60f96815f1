package commands

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/qmod-labs/qmod/internal/spreadsheet"
)

// NewSyncCommand creates the sync command.
func NewSyncCommand() *cobra.Command {
	var objectsPrefix string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror the model document into the geometry spreadsheets",
		Long: `Mirror the model document's geometric parameters into the geometry
document's parameter spreadsheet, so CAD expressions bound to the sheet
pick up the current values.

With --objects, each CAD object descriptor additionally gets its own
sheet under the given name prefix.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)
			return runSync(c, objectsPrefix)
		},
	}

	cmd.Flags().StringVar(&objectsPrefix, "objects", "", "Also mirror object descriptors into sheets with this prefix")

	return cmd
}

func runSync(c *CommandContext, objectsPrefix string) error {
	doc, err := c.loadModel()
	if err != nil {
		return err
	}
	geo, err := c.openGeometry()
	if err != nil {
		return err
	}

	if err := spreadsheet.MirrorParams(doc, geo, c.Cfg.SpreadsheetName); err != nil {
		return fmt.Errorf("mirror parameters: %w", err)
	}
	if objectsPrefix != "" {
		if err := spreadsheet.MirrorObjects(doc, geo, objectsPrefix); err != nil {
			return fmt.Errorf("mirror objects: %w", err)
		}
	}

	if err := geo.SaveFile(c.Cfg.GeometryPath); err != nil {
		return err
	}

	c.Renderer.Success(fmt.Sprintf("mirrored %d parameter(s) into %s", len(doc.GeometricParams), c.Cfg.SpreadsheetName))
	return nil
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	var objectsPrefix string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-sync whenever the model document changes",
		Long: `Watch the model document and mirror it into the geometry spreadsheets
every time it changes on disk. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, c, objectsPrefix)
		},
	}

	cmd.Flags().StringVar(&objectsPrefix, "objects", "", "Also mirror object descriptors into sheets with this prefix")

	return cmd
}

func runWatch(ctx context.Context, c *CommandContext, objectsPrefix string) error {
	// Initial sync so the sheets are current before the first change.
	if err := runSync(c, objectsPrefix); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory, not the file: editors and the model's own
	// atomic save replace the file by rename, which drops a file watch.
	modelPath, err := filepath.Abs(c.Cfg.ModelPath)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(modelPath)); err != nil {
		return fmt.Errorf("failed to watch model directory: %w", err)
	}

	c.Renderer.Printf("watching %s\n", c.Cfg.ModelPath)

	// Debounce timer so a burst of events yields one sync
	var debounce *time.Timer
	sync := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || abs != modelPath {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, func() {
				select {
				case sync <- struct{}{}:
				default:
				}
			})

		case <-sync:
			if err := runSync(c, objectsPrefix); err != nil {
				c.Renderer.Error(err.Error())
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.Renderer.Error(fmt.Sprintf("watch error: %v", err))
		}
	}
}
