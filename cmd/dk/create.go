package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docketlabs/docket/internal/types"
)

var createCmd = &cobra.Command{
	Use:     "create [title]",
	Aliases: []string{"new", "add"},
	Short:   "Create a new task in the backlog",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Get title from flag or positional argument
		titleFlag, _ := cmd.Flags().GetString("title")
		var title string

		if len(args) > 0 && titleFlag != "" {
			if args[0] != titleFlag {
				fmt.Fprintf(os.Stderr, "Error: cannot specify different titles as both positional argument and --title flag\n")
				fmt.Fprintf(os.Stderr, "  Positional: %q\n", args[0])
				fmt.Fprintf(os.Stderr, "  --title:    %q\n", titleFlag)
				os.Exit(1)
			}
			title = args[0]
		} else if len(args) > 0 {
			title = args[0]
		} else if titleFlag != "" {
			title = titleFlag
		} else {
			fmt.Fprintf(os.Stderr, "Error: title required\n")
			os.Exit(1)
		}

		description, _ := cmd.Flags().GetString("description")
		priorityStr, _ := cmd.Flags().GetString("priority")
		parentID, _ := cmd.Flags().GetString("parent")
		labels, _ := cmd.Flags().GetStringSlice("labels")
		repos, _ := cmd.Flags().GetStringSlice("repos")
		estimate, _ := cmd.Flags().GetInt("estimate")
		criteria, _ := cmd.Flags().GetStringSlice("criteria")

		priority := types.Priority(priorityStr)
		if cmd.Flags().Changed("priority") && !validPriority(priority) {
			fmt.Fprintf(os.Stderr, "Error: invalid priority %q (expected P0-P3)\n", priorityStr)
			os.Exit(1)
		}

		task := &types.Task{
			Title:       title,
			Description: description,
			Priority:    priority,
			Parent:      parentID,
			Labels:      labels,
			Repos:       repos,
			Estimate:    estimate,
		}
		for _, c := range criteria {
			task.AcceptanceCriteria = append(task.AcceptanceCriteria, types.Criterion{Text: c})
		}

		ctx := context.Background()
		if err := store.CreateTask(ctx, task); err != nil {
			fatalf("%v", err)
		}

		if outputStructured(task) {
			return
		}
		fmt.Printf("%s Created task: %s\n", green("✓"), task.ID)
		fmt.Printf("  Title: %s\n", task.Title)
		fmt.Printf("  Priority: %s\n", priorityColor(string(task.Priority)))
		fmt.Printf("  Status: %s\n", task.Status)
		if task.Parent != "" {
			fmt.Printf("  Parent: %s\n", task.Parent)
		}
	},
}

func validPriority(p types.Priority) bool {
	for _, v := range types.Priorities {
		if p == v {
			return true
		}
	}
	return false
}

func init() {
	createCmd.Flags().String("title", "", "Task title (alternative to positional argument)")
	createCmd.Flags().StringP("description", "d", "", "Task description")
	createCmd.Flags().StringP("priority", "p", "", "Priority (P0-P3, P0=highest)")
	createCmd.Flags().String("parent", "", "Parent task ID (registers this task as a subtask)")
	createCmd.Flags().StringSliceP("labels", "l", []string{}, "Labels (comma-separated)")
	createCmd.Flags().StringSlice("repos", []string{}, "Repositories this task touches")
	createCmd.Flags().Int("estimate", 0, "Estimated hours")
	createCmd.Flags().StringSlice("criteria", []string{}, "Acceptance criteria (comma-separated)")
	rootCmd.AddCommand(createCmd)
}
