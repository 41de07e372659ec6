// Package cli defines the Cobra command tree for the boxutil CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boxcode/boxutil/internal/source"
)

var (
	// version, commit, date are set via -ldflags at build time.
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "boxutil",
	Short: "Parse, reformat and convert box code files",
	Long: `boxutil reads box code (.bx / .box) files: one command per line, optionally
followed by pipe-separated arguments.

  box drinking_age|21
  ask age?
  # comments and blank lines are ignored
  say foo|bar|baz

It prints files as-is, reformats them canonically, converts them to JSON, YAML
or markdown, or lists their instructions.

Exit codes: 0 success, 2 input could not be read, 3 output could not be
written, 1 anything else.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a code derived from the error.
func Execute(v, c, d string) {
	version, commit, date = v, c, d
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(source.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic output to stderr")

	rootCmd.AddCommand(
		newRenderCmd(),
		newFmtCmd(),
		newWatchCmd(),
		newStatsCmd(),
		newIndexCmd(),
		newFindCmd(),
		newMCPCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("boxutil %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
