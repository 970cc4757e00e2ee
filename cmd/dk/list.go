package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/docketlabs/docket/internal/types"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Run: func(cmd *cobra.Command, args []string) {
		statuses, _ := cmd.Flags().GetStringSlice("status")
		priorities, _ := cmd.Flags().GetStringSlice("priority")
		labels, _ := cmd.Flags().GetStringSlice("label")
		search, _ := cmd.Flags().GetString("search")
		worktree, _ := cmd.Flags().GetString("worktree")
		limit, _ := cmd.Flags().GetInt("limit")
		watch, _ := cmd.Flags().GetBool("watch")

		filter := types.TaskFilter{
			Search:   search,
			Worktree: worktree,
			Limit:    limit,
		}
		for _, s := range statuses {
			filter.Statuses = append(filter.Statuses, types.TaskStatus(s))
		}
		for _, p := range priorities {
			filter.Priorities = append(filter.Priorities, types.Priority(p))
		}
		filter.Labels = labels

		ctx := context.Background()
		if watch {
			watchTasks(ctx, filter)
			return
		}

		tasks, total, err := store.ListTasks(ctx, filter)
		if err != nil {
			fatalf("%v", err)
		}

		if outputStructured(map[string]interface{}{
			"tasks": tasks,
			"count": len(tasks),
			"total": total,
		}) {
			return
		}
		displayTaskList(tasks, total)
	},
}

func displayTaskList(tasks []*types.Task, total int) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}
	for _, t := range tasks {
		line := fmt.Sprintf("%s  %s  [%s]  %s", t.ID, priorityColor(string(t.Priority)), t.Status, t.Title)
		if len(t.Labels) > 0 {
			line += "  " + faint("("+strings.Join(t.Labels, ", ")+")")
		}
		fmt.Println(line)
	}
	if total > len(tasks) {
		fmt.Printf("\nShowing %d of %d tasks (use --limit to see more)\n", len(tasks), total)
	}
}

// watchTasks redisplays the filtered list whenever a document in any task
// partition changes.
func watchTasks(ctx context.Context, filter types.TaskFilter) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating watcher: %v\n", err)
		return
	}
	defer func() { _ = watcher.Close() }() // Best effort cleanup

	// Watch every task partition folder
	for _, status := range types.TaskStatuses {
		dir := filepath.Join(tasksRoot, string(status))
		if err := watcher.Add(dir); err != nil {
			fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", dir, err)
			return
		}
	}

	redisplay := func() {
		tasks, total, err := store.ListTasks(ctx, filter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error refreshing tasks: %v\n", err)
			return
		}
		displayTaskList(tasks, total)
		fmt.Fprintf(os.Stderr, "\nWatching for changes... (Press Ctrl+C to exit)\n")
	}
	redisplay()

	// Handle Ctrl+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Debounce timer
	var debounceTimer *time.Timer
	debounceDelay := 500 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return
		case <-sigChan:
			fmt.Fprintf(os.Stderr, "\nStopped watching.\n")
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			// Transitions create and remove files, so react to more than writes
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if !strings.HasSuffix(event.Name, ".md") {
					continue
				}
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDelay, redisplay)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		}
	}
}

func init() {
	listCmd.Flags().StringSliceP("status", "s", []string{}, "Filter by status (backlog|in-progress|completed|blocked|archive)")
	listCmd.Flags().StringSliceP("priority", "p", []string{}, "Filter by priority (P0-P3)")
	listCmd.Flags().StringSliceP("label", "l", []string{}, "Filter by labels (all must match)")
	listCmd.Flags().String("search", "", "Substring match on id, title, or description")
	listCmd.Flags().String("worktree", "", "Filter by linked worktree")
	listCmd.Flags().Int("limit", 0, "Maximum results (default 50)")
	listCmd.Flags().BoolP("watch", "w", false, "Watch task folders and redisplay on change")
	rootCmd.AddCommand(listCmd)
}
