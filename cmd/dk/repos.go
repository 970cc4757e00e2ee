package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docketlabs/docket/internal/repomap"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Manage the repo name to checkout path map",
}

var reposListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List mapped repositories",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := repomap.Load(docketDir)
		if err != nil {
			fatalf("%v", err)
		}
		if outputStructured(m) {
			return
		}
		if len(m) == 0 {
			fmt.Println("No repositories mapped.")
			return
		}
		for _, name := range m.Names() {
			fmt.Printf("%-20s %s\n", name, m[name])
		}
	},
}

var reposAddCmd = &cobra.Command{
	Use:   "add <name> <path>",
	Short: "Map a repo name to a local checkout path",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		m, err := repomap.Load(docketDir)
		if err != nil {
			fatalf("%v", err)
		}
		absPath, err := filepath.Abs(args[1])
		if err != nil {
			fatalf("resolving %s: %v", args[1], err)
		}
		m[args[0]] = absPath
		if err := m.Save(docketDir); err != nil {
			fatalf("%v", err)
		}
		if outputStructured(map[string]string{"name": args[0], "path": absPath}) {
			return
		}
		fmt.Printf("%s Mapped %s to %s\n", green("✓"), args[0], absPath)
	},
}

var reposRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a repo mapping",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m, err := repomap.Load(docketDir)
		if err != nil {
			fatalf("%v", err)
		}
		if _, ok := m[args[0]]; !ok {
			fatalf("repo %s is not mapped", args[0])
		}
		delete(m, args[0])
		if err := m.Save(docketDir); err != nil {
			fatalf("%v", err)
		}
		if outputStructured(map[string]string{"removed": args[0]}) {
			return
		}
		fmt.Printf("%s Removed %s\n", green("✓"), args[0])
	},
}

func init() {
	reposCmd.AddCommand(reposListCmd)
	reposCmd.AddCommand(reposAddCmd)
	reposCmd.AddCommand(reposRemoveCmd)
	rootCmd.AddCommand(reposCmd)
}
