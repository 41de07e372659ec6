package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/boxcode/boxutil/internal/boxcode"
	"github.com/boxcode/boxutil/internal/source"
)

func newFmtCmd() *cobra.Command {
	var (
		check  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "fmt <file>...",
		Short: "Rewrite box code files in canonical form",
		Long: `Rewrite each file as canonical box code: one instruction per line, a single
space after the command and arguments joined by '|'.

Comments and blank lines are NOT preserved.

Examples:
  boxutil fmt prog.box
  boxutil fmt --check scripts/*.bx
  boxutil fmt --stdout prog.box`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var bar *progressbar.ProgressBar
			if len(args) > 1 && !stdout && !check {
				bar = progressbar.NewOptions(len(args),
					progressbar.OptionSetDescription("  Formatting"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionClearOnFinish(),
				)
			}

			var changed []string
			for _, path := range args {
				text, err := source.Read(path, cfg.Extensions)
				if err != nil {
					return err
				}
				canonical := canonicalText(text)

				switch {
				case stdout:
					if err := source.Write("", canonical, os.Stdout, true); err != nil {
						return err
					}
				case text != canonical:
					changed = append(changed, path)
					if !check {
						if err := source.Write(path, canonical, nil, true); err != nil {
							return err
						}
						debugf("formatted %s", path)
					}
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			}
			if bar != nil {
				_ = bar.Finish()
			}

			for _, path := range changed {
				fmt.Println(path)
			}
			if check && len(changed) > 0 {
				return fmt.Errorf("%d file(s) not in canonical form", len(changed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "list files that are not canonical and fail, without rewriting")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print canonical text instead of rewriting files")

	return cmd
}

// canonicalText is the file content fmt writes: formatted instructions
// followed by a newline, or nothing for a file without instructions.
func canonicalText(text string) string {
	out := boxcode.Format(boxcode.Parse(text))
	if out == "" {
		return ""
	}
	return out + "\n"
}
