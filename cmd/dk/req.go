package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docketlabs/docket/internal/types"
)

var reqCmd = &cobra.Command{
	Use:     "req",
	Aliases: []string{"requirement"},
	Short:   "Manage requirement documents",
}

var reqCreateCmd = &cobra.Command{
	Use:   "create <type> <title>",
	Short: "Create a requirement (prd|tech-spec|user-story|epic|feature)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		reqType := types.ReqType(args[0])
		if _, ok := types.ReqTypePrefixes[reqType]; !ok {
			fatalf("invalid requirement type %q (expected prd, tech-spec, user-story, epic, or feature)", args[0])
		}

		description, _ := cmd.Flags().GetString("description")
		priorityStr, _ := cmd.Flags().GetString("priority")
		criteria, _ := cmd.Flags().GetStringSlice("criteria")

		if cmd.Flags().Changed("priority") && !validPriority(types.Priority(priorityStr)) {
			fatalf("invalid priority %q (expected P0-P3)", priorityStr)
		}

		req := &types.Requirement{
			Type:               reqType,
			Title:              args[1],
			Description:        description,
			Priority:           types.Priority(priorityStr),
			Author:             author,
			AcceptanceCriteria: criteria,
		}
		if err := store.CreateRequirement(context.Background(), req); err != nil {
			fatalf("%v", err)
		}

		if outputStructured(req) {
			return
		}
		fmt.Printf("%s Created %s: %s\n", green("✓"), req.Type, req.ID)
		fmt.Printf("  Title: %s\n", req.Title)
		fmt.Printf("  Status: %s\n", req.Status)
	},
}

var reqListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List requirements",
	Run: func(cmd *cobra.Command, args []string) {
		statuses, _ := cmd.Flags().GetStringSlice("status")
		reqType, _ := cmd.Flags().GetString("type")
		priority, _ := cmd.Flags().GetString("priority")
		search, _ := cmd.Flags().GetString("search")
		limit, _ := cmd.Flags().GetInt("limit")

		filter := types.ReqFilter{
			Type:     types.ReqType(reqType),
			Priority: types.Priority(priority),
			Search:   search,
			Limit:    limit,
		}
		for _, s := range statuses {
			filter.Statuses = append(filter.Statuses, types.ReqStatus(s))
		}

		reqs, err := store.ListRequirements(context.Background(), filter)
		if err != nil {
			fatalf("%v", err)
		}

		if outputStructured(map[string]interface{}{
			"requirements": reqs,
			"count":        len(reqs),
		}) {
			return
		}
		if len(reqs) == 0 {
			fmt.Println("No requirements found.")
			return
		}
		for _, r := range reqs {
			fmt.Printf("%s  %s  [%s]  %s\n", r.ID, priorityColor(string(r.Priority)), r.Status, r.Title)
		}
	},
}

var reqShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one requirement by id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		raw, _ := cmd.Flags().GetBool("raw")
		doc, err := store.FindRequirement(context.Background(), args[0])
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
	},
}

var reqStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Move a requirement to a lifecycle status",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		status := types.ReqStatus(args[1])
		if !status.IsValid() {
			fatalf("invalid status %q (expected draft, review, approved, implemented, or deprecated)", args[1])
		}
		already, err := store.SetRequirementStatus(context.Background(), args[0], status)
		if err != nil {
			fatalf("%v", err)
		}
		if outputStructured(map[string]interface{}{
			"id":        args[0],
			"status":    status,
			"unchanged": already,
		}) {
			return
		}
		if already {
			fmt.Printf("%s %s is already %s\n", yellow("⚠"), args[0], status)
			return
		}
		fmt.Printf("%s %s is now %s\n", green("✓"), args[0], status)
	},
}

var reqLinkCmd = &cobra.Command{
	Use:   "link <id> <task-id>",
	Short: "Link a task to a requirement",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		tid := taskID(args[1])
		if err := store.LinkTask(context.Background(), args[0], tid); err != nil {
			fatalf("%v", err)
		}
		if outputStructured(map[string]string{"id": args[0], "task_id": tid}) {
			return
		}
		fmt.Printf("%s Linked %s to %s\n", green("✓"), tid, args[0])
	},
}

var reqRelateCmd = &cobra.Command{
	Use:   "relate <id> <related-id>",
	Short: "Link a related requirement to a requirement",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := store.LinkRequirement(context.Background(), args[0], args[1]); err != nil {
			fatalf("%v", err)
		}
		if outputStructured(map[string]string{"id": args[0], "linked_id": args[1]}) {
			return
		}
		fmt.Printf("%s Related %s to %s\n", green("✓"), args[1], args[0])
	},
}

var reqQuestionCmd = &cobra.Command{
	Use:   "question <id> <text>",
	Short: "Add an open question to a requirement",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := store.AddOpenQuestion(context.Background(), args[0], args[1]); err != nil {
			fatalf("%v", err)
		}
		if outputStructured(map[string]string{"id": args[0], "question": args[1]}) {
			return
		}
		fmt.Printf("%s Added open question to %s\n", green("✓"), args[0])
	},
}

var reqCriterionCmd = &cobra.Command{
	Use:   "criterion <id> <text>",
	Short: "Add an acceptance criterion to a requirement",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := store.AddCriterion(context.Background(), args[0], args[1]); err != nil {
			fatalf("%v", err)
		}
		if outputStructured(map[string]string{"id": args[0], "criterion": args[1]}) {
			return
		}
		fmt.Printf("%s Added criterion to %s\n", green("✓"), args[0])
	},
}

var reqSpecCmd = &cobra.Command{
	Use:   "spec <prd-id>",
	Short: "Generate a draft tech-spec from a PRD",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := store.GenerateSpec(context.Background(), args[0])
		if err != nil {
			if spec != nil {
				// Spec was written but the PRD back-link failed
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
			} else {
				fatalf("%v", err)
			}
		}
		if outputStructured(spec) {
			return
		}
		fmt.Printf("%s Generated spec: %s\n", green("✓"), spec.ID)
		fmt.Printf("  Title: %s\n", spec.Title)
		fmt.Printf("  From: %s\n", args[0])
	},
}

var reqTraceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Build the requirement-to-task traceability matrix",
	Run: func(cmd *cobra.Command, args []string) {
		matrix, err := store.Traceability(context.Background())
		if err != nil {
			fatalf("%v", err)
		}
		if outputStructured(matrix) {
			return
		}

		if matrix.Total == 0 {
			fmt.Println("No requirements found.")
			return
		}
		for _, row := range matrix.Rows {
			tasks := "-"
			if len(row.LinkedTasks) > 0 {
				tasks = strings.Join(row.LinkedTasks, ", ")
			}
			flag := ""
			if row.HasOpenQuestions {
				flag = "  " + yellow("?")
			}
			fmt.Printf("%-10s  %-12s  [%s]  %s%s\n", row.ID, row.Type, row.Status, tasks, flag)
		}
		fmt.Printf("\nTotal: %d  with tasks: %d  with open questions: %d\n",
			matrix.Total, matrix.WithTasks, matrix.WithOpenQuestions)
	},
}

func init() {
	reqCreateCmd.Flags().StringP("description", "d", "", "Requirement description")
	reqCreateCmd.Flags().StringP("priority", "p", "", "Priority (P0-P3)")
	reqCreateCmd.Flags().StringSlice("criteria", []string{}, "Acceptance criteria (comma-separated)")

	reqListCmd.Flags().StringSliceP("status", "s", []string{}, "Filter by status (draft|review|approved|implemented|deprecated)")
	reqListCmd.Flags().StringP("type", "t", "", "Filter by type (prd|tech-spec|user-story|epic|feature)")
	reqListCmd.Flags().StringP("priority", "p", "", "Filter by priority (P0-P3)")
	reqListCmd.Flags().String("search", "", "Substring match on id, title, or description")
	reqListCmd.Flags().Int("limit", 0, "Maximum results (default 50)")

	reqShowCmd.Flags().Bool("raw", false, "Print the raw markdown document")

	reqCmd.AddCommand(reqCreateCmd)
	reqCmd.AddCommand(reqListCmd)
	reqCmd.AddCommand(reqShowCmd)
	reqCmd.AddCommand(reqStatusCmd)
	reqCmd.AddCommand(reqLinkCmd)
	reqCmd.AddCommand(reqRelateCmd)
	reqCmd.AddCommand(reqQuestionCmd)
	reqCmd.AddCommand(reqCriterionCmd)
	reqCmd.AddCommand(reqSpecCmd)
	reqCmd.AddCommand(reqTraceCmd)
	rootCmd.AddCommand(reqCmd)
}
