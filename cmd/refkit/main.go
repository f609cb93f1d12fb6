package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/refkit/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Print(os.Stderr, errors.FromError(err, errors.CodeCommandFailed))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "refkit",
		Short: "Ref merging primitives for Go component runtimes",
		Long: `refkit provides ref targets, merged refs and the hook runtime that
keeps merged refs stable across renders.

This CLI exercises the runtime and prints its effective configuration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var noColor bool

	rootCmd.PersistentFlags().StringP("dir", "C", ".", "Directory containing refkit.json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI colors in error output")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if noColor {
			errors.DisableColors()
		} else {
			errors.EnableColors()
		}
	}

	rootCmd.AddCommand(
		demoCmd(),
		configCmd(),
		errorsCmd(),
		versionCmd(),
	)

	return rootCmd
}

// success prints a success message.
func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", fmt.Sprintf(format, args...))
}
