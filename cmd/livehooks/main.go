// Command livehooks serves the built-in hooks and inspects datepicker
// formatting from the terminal.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// now is the clock for commands that need today.
var now = time.Now

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "livehooks",
		Short: "Server-side hooks for live HTML anchors",
		Long: `livehooks runs the behavior of [v-hook] anchors on the server.

The browser relay reports anchors and their events over a WebSocket
and applies the DOM patches hooks send back. Built-in hooks:

  • Datepicker (keeps its value across external re-renders)
  • SearchableSelect
  • Tabs
  • Flash`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		initCmd(),
		calendarCmd(),
		dateCmd(),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
