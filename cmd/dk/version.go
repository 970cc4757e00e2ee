package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version info, set at build time via ldflags
var (
	Version = "0.1.0"
	Build   = "dev"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if outputStructured(map[string]string{"version": Version, "build": Build}) {
			return
		}
		fmt.Printf("dk version %s\n", Version)
		fmt.Printf("build: %s\n", Build)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
