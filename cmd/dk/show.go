package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docketlabs/docket/internal/types"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a task or requirement by id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := taskID(args[0])
		raw, _ := cmd.Flags().GetBool("raw")
		ctx := context.Background()

		if types.ReqTypeForID(id) != "" {
			doc, err := store.FindRequirement(ctx, id)
			if err != nil {
				fatalf("%v", err)
			}
			if raw {
				fmt.Print(doc.Content)
				return
			}
			if outputStructured(doc.Requirement) {
				return
			}
			displayRequirement(doc.Requirement)
			return
		}

		doc, err := store.FindTask(ctx, id)
		if err != nil {
			fatalf("%v", err)
		}
		if raw {
			fmt.Print(doc.Content)
			return
		}
		if outputStructured(doc.Task) {
			return
		}
		displayTask(doc.Task)
	},
}

func displayTask(t *types.Task) {
	fmt.Printf("%s: %s\n", cyan(t.ID), t.Title)
	fmt.Printf("  Status:   %s\n", t.Status)
	fmt.Printf("  Priority: %s\n", priorityColor(string(t.Priority)))
	if t.Created != "" {
		fmt.Printf("  Created:  %s\n", t.Created)
	}
	if t.Updated != "" {
		fmt.Printf("  Updated:  %s\n", t.Updated)
	}
	if t.Completed != "" {
		fmt.Printf("  Completed: %s\n", t.Completed)
	}
	if t.BlockedBy != "" {
		fmt.Printf("  Blocked by: %s\n", red(t.BlockedBy))
	}
	if t.Parent != "" {
		fmt.Printf("  Parent:   %s\n", t.Parent)
	}
	if len(t.Labels) > 0 {
		fmt.Printf("  Labels:   %s\n", strings.Join(t.Labels, ", "))
	}
	if len(t.Repos) > 0 {
		fmt.Printf("  Repos:    %s\n", strings.Join(t.Repos, ", "))
	}
	if t.Worktree != "" {
		fmt.Printf("  Worktree: %s\n", t.Worktree)
	}
	if t.Estimate > 0 {
		fmt.Printf("  Estimate: %dh\n", t.Estimate)
	}
	if t.Actual > 0 {
		fmt.Printf("  Actual:   %dh\n", t.Actual)
	}
	if t.Description != "" {
		fmt.Printf("\n%s\n", t.Description)
	}
	if len(t.AcceptanceCriteria) > 0 {
		fmt.Println("\nAcceptance Criteria:")
		for _, c := range t.AcceptanceCriteria {
			box := "[ ]"
			if c.Checked {
				box = green("[x]")
			}
			fmt.Printf("  %s %s\n", box, c.Text)
		}
	}
	if len(t.Subtasks) > 0 {
		fmt.Println("\nSubtasks:")
		for _, s := range t.Subtasks {
			box := "[ ]"
			if s.Completed {
				box = green("[x]")
			}
			fmt.Printf("  %s %s\n", box, s.ID)
		}
	}
	if t.ImplementationNotes != "" {
		fmt.Printf("\nImplementation Notes:\n%s\n", t.ImplementationNotes)
	}
}

func displayRequirement(r *types.Requirement) {
	fmt.Printf("%s: %s\n", cyan(r.ID), r.Title)
	fmt.Printf("  Type:     %s\n", r.Type)
	fmt.Printf("  Status:   %s\n", r.Status)
	fmt.Printf("  Priority: %s\n", priorityColor(string(r.Priority)))
	if r.Author != "" {
		fmt.Printf("  Author:   %s\n", r.Author)
	}
	if r.Created != "" {
		fmt.Printf("  Created:  %s\n", r.Created)
	}
	if r.Updated != "" {
		fmt.Printf("  Updated:  %s\n", r.Updated)
	}
	if r.Description != "" {
		fmt.Printf("\n%s\n", r.Description)
	}
	if len(r.AcceptanceCriteria) > 0 {
		fmt.Println("\nAcceptance Criteria:")
		for _, c := range r.AcceptanceCriteria {
			fmt.Printf("  - %s\n", c)
		}
	}
	if len(r.Dependencies) > 0 {
		fmt.Printf("\nDependencies: %s\n", strings.Join(r.Dependencies, ", "))
	}
	if len(r.LinkedTasks) > 0 {
		fmt.Printf("Linked Tasks: %s\n", strings.Join(r.LinkedTasks, ", "))
	}
	if len(r.LinkedRequirements) > 0 {
		fmt.Printf("Related Requirements: %s\n", strings.Join(r.LinkedRequirements, ", "))
	}
	if len(r.OpenQuestions) > 0 {
		fmt.Println("\nOpen Questions:")
		for _, q := range r.OpenQuestions {
			fmt.Printf("  %s %s\n", yellow("?"), q)
		}
	}
	if r.TechnicalNotes != "" {
		fmt.Printf("\nTechnical Notes:\n%s\n", r.TechnicalNotes)
	}
}

func init() {
	showCmd.Flags().Bool("raw", false, "Print the raw markdown document")
	rootCmd.AddCommand(showCmd)
}
