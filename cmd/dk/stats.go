package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/docketlabs/docket/internal/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate task counts and hours",
	Run: func(cmd *cobra.Command, args []string) {
		stats, err := store.TaskStats(context.Background())
		if err != nil {
			fatalf("%v", err)
		}
		if outputStructured(stats) {
			return
		}

		fmt.Printf("Total tasks: %d\n\n", stats.Total)

		fmt.Println("By status:")
		for _, s := range types.TaskStatuses {
			if s == types.StatusArchive {
				continue
			}
			fmt.Printf("  %-12s %d\n", string(s)+":", stats.ByStatus[s])
		}

		fmt.Println("\nBy priority:")
		for _, p := range types.Priorities {
			fmt.Printf("  %-12s %d\n", priorityColor(string(p))+":", stats.ByPriority[p])
		}

		if len(stats.ByLabel) > 0 {
			labels := make([]string, 0, len(stats.ByLabel))
			for l := range stats.ByLabel {
				labels = append(labels, l)
			}
			sort.Strings(labels)
			fmt.Println("\nBy label:")
			for _, l := range labels {
				fmt.Printf("  %-12s %d\n", l+":", stats.ByLabel[l])
			}
		}

		fmt.Printf("\nEstimated hours: %d\n", stats.EstimatedHours)
		fmt.Printf("Actual hours:    %d\n", stats.ActualHours)
	},
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "List tasks currently in progress",
	Run: func(cmd *cobra.Command, args []string) {
		tasks, err := store.CurrentTasks(context.Background())
		if err != nil {
			fatalf("%v", err)
		}
		if outputStructured(map[string]interface{}{
			"tasks": tasks,
			"count": len(tasks),
		}) {
			return
		}
		if len(tasks) == 0 {
			fmt.Println("Nothing in progress.")
			return
		}
		displayTaskList(tasks, len(tasks))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(currentCmd)
}
