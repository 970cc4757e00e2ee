package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note <id> <text>",
	Short: "Append a dated note to a task's implementation notes",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id := taskID(args[0])
		if err := store.AddNote(context.Background(), id, args[1]); err != nil {
			fatalf("%v", err)
		}
		if outputStructured(map[string]string{"id": id, "note": args[1]}) {
			return
		}
		fmt.Printf("%s Added note to %s\n", green("✓"), id)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <id> <index>",
	Short: "Check off the nth unchecked acceptance criterion (0-based)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var index int
		if _, err := fmt.Sscanf(args[1], "%d", &index); err != nil {
			fatalf("index must be a number, got %q", args[1])
		}
		id := taskID(args[0])
		if err := store.CheckCriterion(context.Background(), id, index); err != nil {
			fatalf("%v", err)
		}
		if outputStructured(map[string]interface{}{"id": id, "index": index}) {
			return
		}
		fmt.Printf("%s Checked criterion %d on %s\n", green("✓"), index, id)
	},
}

var worktreeCmd = &cobra.Command{
	Use:   "worktree <id> <repo> <directory>",
	Short: "Link a task to a repo worktree directory",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		id := taskID(args[0])
		worktree, err := store.LinkWorktree(context.Background(), id, args[1], args[2])
		if err != nil {
			fatalf("%v", err)
		}
		if outputStructured(map[string]string{"id": id, "worktree": worktree}) {
			return
		}
		fmt.Printf("%s Linked %s to worktree %s\n", green("✓"), id, worktree)
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(worktreeCmd)
}
