package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docketlabs/docket"
	"github.com/docketlabs/docket/internal/configfile"
	"github.com/docketlabs/docket/internal/storage/markdown"
)

var (
	initTasksDir string
	initReqsDir  string
	initAuthor   string
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a docket workspace",
	Long: `Create the .docket marker directory, workspace metadata, and the
task and requirement partition folders. Defaults to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		absRoot, err := filepath.Abs(root)
		if err != nil {
			fatalf("resolving %s: %v", root, err)
		}

		markerDir := filepath.Join(absRoot, docket.DirName)
		if _, err := os.Stat(configfile.ConfigPath(markerDir)); err == nil {
			fatalf("workspace already initialized at %s", absRoot)
		}
		if err := os.MkdirAll(markerDir, 0o750); err != nil {
			fatalf("creating %s: %v", markerDir, err)
		}

		cfg := configfile.DefaultConfig()
		if initTasksDir != "" {
			cfg.TasksDir = initTasksDir
		}
		if initReqsDir != "" {
			cfg.RequirementsDir = initReqsDir
		}
		if initAuthor != "" {
			cfg.Author = initAuthor
		}
		if err := cfg.Save(markerDir); err != nil {
			fatalf("writing workspace metadata: %v", err)
		}

		// markdown.New creates every partition directory
		if _, err := markdown.New(absRoot, markdown.WithLayout(cfg.TasksDir, cfg.RequirementsDir)); err != nil {
			fatalf("creating partition folders: %v", err)
		}

		if outputStructured(map[string]string{
			"root":         absRoot,
			"tasks":        cfg.TasksDir,
			"requirements": cfg.RequirementsDir,
		}) {
			return
		}
		fmt.Printf("%s Initialized docket workspace in %s\n", green("✓"), absRoot)
		fmt.Printf("  tasks:        %s/\n", cfg.TasksDir)
		fmt.Printf("  requirements: %s/\n", cfg.RequirementsDir)
	},
}

func init() {
	initCmd.Flags().StringVar(&initTasksDir, "tasks-dir", "", "Directory for task partitions (default \"tasks\")")
	initCmd.Flags().StringVar(&initReqsDir, "requirements-dir", "", "Directory for requirement partitions (default \"requirements\")")
	initCmd.Flags().StringVar(&initAuthor, "init-author", "", "Default author recorded in workspace metadata")
	rootCmd.AddCommand(initCmd)
}
