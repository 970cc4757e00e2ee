package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/docketlabs/docket/internal/rpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the workspace over JSON-RPC on stdin/stdout",
	Long: `Run a line-delimited JSON-RPC server exposing every task and
requirement operation as a tool. Intended for agent and editor
integrations; diagnostics go to .docket/serve.log, never stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		logPath := filepath.Join(docketDir, "serve.log")
		logger := log.New(&lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}, "", log.LstdFlags)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rpc.ServerVersion = Version
		server := rpc.NewServer(store, author, logger)

		logger.Printf("serving workspace %s (version %s)", workspaceRoot, Version)
		if err := server.Serve(ctx, os.Stdin, os.Stdout); err != nil {
			logger.Printf("serve: %v", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
