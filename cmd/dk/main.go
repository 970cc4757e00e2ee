package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/docketlabs/docket"
	"github.com/docketlabs/docket/internal/config"
	"github.com/docketlabs/docket/internal/configfile"
	"github.com/docketlabs/docket/internal/storage/markdown"
)

var (
	workspaceDir string // --dir override
	author       string
	jsonOutput   bool
	outputFormat string // "json" or "yaml" for structured output

	workspaceRoot string // resolved workspace root
	docketDir     string // <root>/.docket
	tasksRoot     string // <root>/<tasks dir>
	archiveDays   int    // workspace archive-days setting, 0 when unset
	store         docket.Storage
)

func init() {
	// Initialize viper configuration
	if err := config.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize config: %v\n", err)
	}

	rootCmd.PersistentFlags().StringVar(&workspaceDir, "dir", "", "Workspace root (default: walk up to find .docket)")
	rootCmd.PersistentFlags().StringVar(&author, "author", "", "Author name for new requirements (default: $DOCKET_AUTHOR or $USER)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Structured output format (json|yaml)")

	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

var rootCmd = &cobra.Command{
	Use:   "dk",
	Short: "dk - Markdown-backed task and requirement tracker",
	Long:  `Tasks and requirements as plain markdown files, organized into lifecycle folders. Documents stay hand-editable; dk keeps them consistent.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("dk version %s (%s)\n", Version, Build)
			return
		}
		_ = cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Priority: flags > viper (config file + env vars) > defaults
		if !cmd.Flags().Changed("json") {
			jsonOutput = config.GetBool("json")
		}
		if !cmd.Flags().Changed("format") && outputFormat == "" {
			outputFormat = config.GetString("format")
		}
		if !cmd.Flags().Changed("dir") && workspaceDir == "" {
			workspaceDir = config.GetString("dir")
		}
		if !cmd.Flags().Changed("author") && author == "" {
			author = config.GetString("author")
		}

		// Commands that work without a workspace
		noStoreCommands := []string{
			"init",
			"version",
			"help",
			"completion",
			"bash",
			"zsh",
			"fish",
			"powershell",
		}
		if slices.Contains(noStoreCommands, cmd.Name()) {
			return
		}

		// Resolve the workspace root
		workspaceRoot = workspaceDir
		if workspaceRoot == "" {
			workspaceRoot = docket.FindWorkspace()
		}
		if workspaceRoot == "" {
			fmt.Fprintf(os.Stderr, "Error: no docket workspace found\n")
			fmt.Fprintf(os.Stderr, "Hint: run 'dk init' to create one in the current directory\n")
			fmt.Fprintf(os.Stderr, "      or pass --dir to point at an existing workspace\n")
			os.Exit(1)
		}
		docketDir = filepath.Join(workspaceRoot, docket.DirName)

		// Viper resolves .docket/config.yaml relative to the cwd, which
		// misses the workspace file when --dir points elsewhere. Read it
		// directly from the resolved workspace.
		local := config.LoadLocalConfigWithEnv(docketDir)
		if author == "" {
			author = local.Author
		}
		archiveDays = local.ArchiveDays

		// Layout and default author come from workspace metadata
		meta, err := configfile.Load(docketDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: reading workspace metadata: %v\n", err)
			os.Exit(1)
		}
		if meta == nil {
			meta = configfile.DefaultConfig()
		}

		// Author priority: --author flag > DOCKET_AUTHOR/config > metadata > USER > "unknown"
		if author == "" {
			author = meta.Author
		}
		if author == "" {
			if user := os.Getenv("USER"); user != "" {
				author = user
			} else {
				author = "unknown"
			}
		}

		tasksRoot = meta.TasksPath(workspaceRoot)

		var opts []markdown.Option
		if meta.TasksDir != "" || meta.RequirementsDir != "" {
			tasksDir := meta.TasksDir
			if tasksDir == "" {
				tasksDir = "tasks"
			}
			reqsDir := meta.RequirementsDir
			if reqsDir == "" {
				reqsDir = "requirements"
			}
			opts = append(opts, markdown.WithLayout(tasksDir, reqsDir))
		}

		store, err = markdown.New(workspaceRoot, opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open workspace: %v\n", err)
			os.Exit(1)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
