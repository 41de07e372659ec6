package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boxcode/boxutil/internal/boxcode"
	"github.com/boxcode/boxutil/internal/source"
	"github.com/boxcode/boxutil/internal/stats"
)

func newStatsCmd() *cobra.Command {
	var tokens bool

	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Summarise the instructions in a box code file",
		Long: `Count instructions, arguments and commands in a box code file.

With --tokens, also estimate how many LLM tokens the canonical form of the
file takes (cl100k_base encoding; the encoding is downloaded on first use).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			text, err := source.Read(args[0], cfg.Extensions)
			if err != nil {
				return err
			}

			var tok stats.TokenCounter
			if tokens {
				t, err := stats.NewTokenizer(stats.DefaultEncoding)
				if err != nil {
					warnf("token estimate unavailable: %v", err)
				} else {
					debugf("token encoding: %s", t.Encoding())
					tok = t
				}
			}

			summary := stats.Summarize(boxcode.Parse(text), tok)
			fmt.Print(summary.Render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&tokens, "tokens", false, "estimate the LLM token count of the canonical text")

	return cmd
}
