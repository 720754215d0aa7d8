package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the log and auto-backfill",
		Long:  `Watch the memory log for external writes and automatically embed new entries.`,
		RunE:  makeWatchRunner(),
	}

	cmd.Flags().Duration("debounce", 500*time.Millisecond, "Debounce window for batching changes")
	return cmd
}

func makeWatchRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		debounce, _ := cmd.Flags().GetDuration("debounce")

		engine, err := engineFromFlags(cmd)
		if err != nil {
			return err
		}
		if !engine.Gateway().Active() {
			return fmt.Errorf("no embedding provider configured")
		}
		if err := engine.Vault().EnsureDir(); err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		// Watch the directory, not the file: editors replace files via
		// rename, which drops a watch on the file itself.
		if err := watcher.Add(engine.Vault().Dir); err != nil {
			return fmt.Errorf("watch vault: %w", err)
		}

		logPath := engine.Vault().LogPath()
		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes...\n", logPath)

		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		pending := false

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if shouldIgnoreEvent(event, logPath) {
					continue
				}
				if !pending {
					timer.Reset(debounce)
					pending = true
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
			case <-timer.C:
				pending = false
				out, backfillErr := engine.Backfill(cmd.Context())
				if backfillErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "backfill error: %v\n", backfillErr)
					continue
				}
				if out.Filled > 0 || out.Missing > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "embedded %d, %d still missing\n", out.Filled, out.Missing)
				}
			}
		}
	}
}

func shouldIgnoreEvent(event fsnotify.Event, logPath string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(logPath) {
		return true
	}

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return true
	}

	return false
}
