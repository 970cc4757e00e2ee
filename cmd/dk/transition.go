package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docketlabs/docket/internal/config"
)

var startCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Move a task to in-progress",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		task, already, err := store.StartTask(context.Background(), taskID(args[0]))
		if err != nil {
			fatalf("%v", err)
		}
		if outputStructured(map[string]interface{}{
			"task":                task,
			"already_in_progress": already,
		}) {
			return
		}
		if already {
			fmt.Printf("%s Task %s is already in progress\n", yellow("⚠"), task.ID)
			return
		}
		fmt.Printf("%s Started task: %s\n", green("✓"), task.ID)
	},
}

var completeCmd = &cobra.Command{
	Use:     "complete <id>",
	Aliases: []string{"done", "finish"},
	Short:   "Move a task to completed",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		actual, _ := cmd.Flags().GetInt("actual")
		task, err := store.CompleteTask(context.Background(), taskID(args[0]), actual)
		if err != nil {
			fatalf("%v", err)
		}
		if outputStructured(task) {
			return
		}
		fmt.Printf("%s Completed task: %s\n", green("✓"), task.ID)
		if task.Actual > 0 {
			fmt.Printf("  Actual: %dh\n", task.Actual)
		}
	},
}

var blockCmd = &cobra.Command{
	Use:   "block <id>",
	Short: "Move a task to blocked",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		blockedBy, _ := cmd.Flags().GetString("by")
		if blockedBy == "" {
			fatalf("--by is required (what is blocking this task?)")
		}
		task, err := store.BlockTask(context.Background(), taskID(args[0]), blockedBy)
		if err != nil {
			fatalf("%v", err)
		}
		if outputStructured(task) {
			return
		}
		fmt.Printf("%s Blocked task: %s\n", red("✗"), task.ID)
		fmt.Printf("  Blocked by: %s\n", task.BlockedBy)
	},
}

var unblockCmd = &cobra.Command{
	Use:   "unblock <id>",
	Short: "Move a blocked task back to the backlog",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		task, err := store.UnblockTask(context.Background(), taskID(args[0]))
		if err != nil {
			fatalf("%v", err)
		}
		if outputStructured(task) {
			return
		}
		fmt.Printf("%s Unblocked task: %s\n", green("✓"), task.ID)
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Archive a completed task, or sweep old completed tasks",
	Long: `With an id, move that completed task to the archive folder. With
--older-than, archive every completed task whose completion date is older
than the given number of days.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		if len(args) == 0 {
			days, _ := cmd.Flags().GetInt("older-than")
			if !cmd.Flags().Changed("older-than") {
				if archiveDays > 0 {
					days = archiveDays
				} else if v := config.GetInt("archive-days"); v > 0 {
					days = v
				}
			}
			ids, err := store.ArchiveOlderThan(ctx, days)
			if err != nil {
				fatalf("%v", err)
			}
			if outputStructured(map[string]interface{}{
				"archived": ids,
				"count":    len(ids),
			}) {
				return
			}
			if len(ids) == 0 {
				fmt.Printf("No completed tasks older than %d days.\n", days)
				return
			}
			fmt.Printf("%s Archived %d task(s):\n", green("✓"), len(ids))
			for _, id := range ids {
				fmt.Printf("  %s\n", id)
			}
			return
		}

		id := taskID(args[0])
		if err := store.ArchiveTask(ctx, id); err != nil {
			fatalf("%v", err)
		}
		if outputStructured(map[string]string{"archived": id}) {
			return
		}
		fmt.Printf("%s Archived task: %s\n", green("✓"), id)
	},
}

func init() {
	completeCmd.Flags().IntP("actual", "a", 0, "Actual hours spent")
	blockCmd.Flags().String("by", "", "What is blocking this task (required)")
	archiveCmd.Flags().Int("older-than", 30, "Archive completed tasks older than this many days")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(unblockCmd)
	rootCmd.AddCommand(archiveCmd)
}
