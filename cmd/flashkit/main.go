package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "flashkit",
		Short: "Flash notification queue server",
		Long: `flashkit turns flash messages set during page navigations into a queue
of toast notifications.

It serves the queue over HTTP (JSON, datastar SSE and websocket), relays
lifecycle events from other processes through Redis and can replay
recorded event logs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (env vars still override it)")

	root.AddCommand(
		serveCmd(&configPath),
		replayCmd(&configPath),
		publishCmd(&configPath),
		versionCmd(),
	)
	return root
}
