package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docketlabs/docket/internal/storage"
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task's fields",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := taskID(args[0])

		var u storage.TaskUpdate
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			u.Title = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			u.Description = &v
		}
		if cmd.Flags().Changed("priority") {
			v, _ := cmd.Flags().GetString("priority")
			u.Priority = &v
		}
		if cmd.Flags().Changed("labels") {
			v, _ := cmd.Flags().GetStringSlice("labels")
			if v == nil {
				v = []string{}
			}
			u.Labels = v
		}
		if cmd.Flags().Changed("estimate") {
			v, _ := cmd.Flags().GetInt("estimate")
			u.Estimate = &v
		}
		if cmd.Flags().Changed("actual") {
			v, _ := cmd.Flags().GetInt("actual")
			u.Actual = &v
		}

		ctx := context.Background()
		if err := store.UpdateTask(ctx, id, u); err != nil {
			fatalf("%v", err)
		}

		doc, err := store.FindTask(ctx, id)
		if err != nil {
			fatalf("%v", err)
		}
		if outputStructured(doc.Task) {
			return
		}
		fmt.Printf("%s Updated task: %s\n", green("✓"), id)
	},
}

func init() {
	updateCmd.Flags().String("title", "", "New title")
	updateCmd.Flags().StringP("description", "d", "", "New description")
	updateCmd.Flags().StringP("priority", "p", "", "New priority (P0-P3)")
	updateCmd.Flags().StringSliceP("labels", "l", []string{}, "Replace the label set (empty clears all labels)")
	updateCmd.Flags().Int("estimate", 0, "Estimated hours")
	updateCmd.Flags().Int("actual", 0, "Actual hours")
	rootCmd.AddCommand(updateCmd)
}
