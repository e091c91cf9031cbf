package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/amonks/routine/storage"
	"github.com/amonks/routine/task"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-print the task list whenever it changes",
	Long: `Re-print the task list whenever it changes.

The list is also refreshed every --interval so urgency stays current as
due dates approach.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var (
	watchInterval time.Duration
	watchHideDone bool
)

const watchDebounce = 200 * time.Millisecond

var errWatchInterval = errors.New("--interval must be positive")

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Minute, "Refresh interval")
	watchCmd.Flags().BoolVar(&watchHideDone, "hide-done", false, "Hide finished tasks")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchInterval <= 0 {
		return fmt.Errorf("%w: %s", errWatchInterval, watchInterval)
	}
	a, err := openProvider()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := os.MkdirAll(a.stateDir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(a.stateDir); err != nil {
		return fmt.Errorf("watch %s: %w", a.stateDir, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	render := func() {
		tasks, err := readTasks(ctx, a.provider)
		if err != nil {
			a.logger.Printf("read tasks: %v", err)
		}
		now := a.now()
		tasks = filterTasks(task.Order(tasks, now), "", watchHideDone)
		fmt.Print("\x1b[H\x1b[2J")
		fmt.Printf("%s\n\n", now.Format("15:04:05"))
		if len(tasks) == 0 {
			fmt.Println("No tasks.")
			return
		}
		fmt.Print(formatTaskTable(tasks, now, idHighlighter(task.NewIDIndex(tasks))))
	}
	render()

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()
	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isStoreEvent(event) {
				debounce.Reset(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Printf("watch error: %v", err)
		case <-debounce.C:
			render()
		case <-ticker.C:
			render()
		case <-ctx.Done():
			return nil
		}
	}
}

// readTasks decodes the stored collection without taking ownership of it.
func readTasks(ctx context.Context, provider storage.Provider) ([]task.Task, error) {
	data, err := provider.Get(ctx, tasksKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return task.Decode(data)
}

// isStoreEvent reports whether event touches a file that holds tasks.
func isStoreEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	name := filepath.Base(event.Name)
	return name == tasksKey+".json" || strings.HasPrefix(name, storage.SQLiteFile)
}
