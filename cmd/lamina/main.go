package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ┌─┐┌┬┐┬┌┐┌┌─┐
  ║  ├─┤│││││││├─┤
  ╩═╝┴ ┴┴ ┴┴┘└┘┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "lamina",
		Short: "Server-side DOM morphing toolkit",
		Long: `Lamina keeps a live node tree in memory and morphs it in place
toward freshly rendered virtual trees, emitting minimal mutations.

  • In-place tree reconciliation with keyed children
  • Component lifecycle over comment-marker hosts
  • Binary patch protocol for streaming diffs
  • Live preview server with WebSocket patch streaming`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		initCmd(),
		serveCmd(),
		diffCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Lamina ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
