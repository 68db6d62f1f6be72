package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/docsift-labs/docsift-cli/internal/core/ports/driving"
	"github.com/docsift-labs/docsift-cli/internal/logger"
)

// watchDebounce coalesces bursts of filesystem events into one
// re-ingestion. Editors typically emit several writes per save.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Watch a PDF and re-ingest on change",
	Long: `Ingests the PDF at the given path, then watches it for changes and
re-ingests whenever the file is rewritten. Useful while a document is
still being edited. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&ingestTitle, "title", "", "document title stored with each chunk")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := ingestOnce(ctx, cmd, path); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	// Watch the parent directory: editors replace files on save, which
	// drops a watch placed on the file itself.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for changes (Ctrl+C to stop)...\n", path)

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	var debounce *time.Timer
	reingest := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || abs != target {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case reingest <- struct{}{}:
				default:
				}
			})

		case <-reingest:
			if err := ingestOnce(ctx, cmd, path); err != nil {
				// Keep watching: the previous ingestion stays current.
				cmd.PrintErrf("re-ingest failed: %v\n", err)
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", werr)
		}
	}
}

func ingestOnce(ctx context.Context, cmd *cobra.Command, path string) error {
	opts := driving.IngestOptions{Title: ingestTitle}

	result, err := ingestService.Ingest(ctx, path, opts)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %s: %d chunks indexed.\n", result.FileName, result.ChunkCount)
	return nil
}
