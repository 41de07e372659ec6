package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boxcode/boxutil/internal/config"
	"github.com/boxcode/boxutil/internal/export"
	"github.com/boxcode/boxutil/internal/source"
)

// renderOptions selects how a box file is rendered and where it goes.
type renderOptions struct {
	format string
	output string // empty means stdout
	indent int
	color  string
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:     "render <file>",
		Aliases: []string{"show", "cat"},
		Short:   "Print a box code file as raw text, canonical box code, JSON, YAML, markdown or a listing",
		Long: `Read a .bx or .box file and print it in the chosen format.

Formats:
  raw       the file exactly as written
  box       canonical box code (comments and blank lines removed)
  json      [{"cmd": ..., "args": [...]}, ...]
  yaml      the JSON shape as YAML
  listing   numbered commands with their arguments underneath
  markdown  a table of instructions

Examples:
  boxutil render prog.box
  boxutil render prog.box --format json --indent 2
  boxutil render prog.bx -f box -o prog.canonical.bx
  boxutil render prog.box -f listing --color always | less -R`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyRenderDefaults(&opts, cmd, cfg)
			return renderFile(args[0], opts, cfg.Extensions, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "",
		"output format: "+strings.Join(export.ValidFormats(), ", ")+" (default from config, else raw)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().IntVar(&opts.indent, "indent", 0, "indent JSON output by this many spaces")
	cmd.Flags().StringVar(&opts.color, "color", "", "colour the listing: auto, always, never")

	return cmd
}

// applyRenderDefaults fills options the user did not set from config.
func applyRenderDefaults(opts *renderOptions, cmd *cobra.Command, cfg config.GlobalConfig) {
	if opts.format == "" {
		opts.format = cfg.Output.Format
	}
	if opts.format == "" {
		opts.format = "raw"
	}
	if !cmd.Flags().Changed("indent") {
		opts.indent = cfg.Output.Indent
	}
	if opts.color == "" {
		opts.color = cfg.Output.Color
	}
}

// renderFile reads path, renders it per opts and writes the result.
func renderFile(path string, opts renderOptions, exts []string, stdout io.Writer) error {
	exp, err := exporterFor(opts, stdout)
	if err != nil {
		return err
	}

	text, err := source.Read(path, exts)
	if err != nil {
		return err
	}

	doc := export.NewDocument(path, text)
	debugf("render %s: %d instruction(s) as %s", path, len(doc.Instructions), opts.format)

	out, err := exp.Export(doc)
	if err != nil {
		return fmt.Errorf("render %s: %w", opts.format, err)
	}
	return source.Write(opts.output, out, stdout, opts.format == "raw")
}

// exporterFor returns the registered exporter for opts.format, configured
// with indentation or colour where the format supports it.
func exporterFor(opts renderOptions, stdout io.Writer) (export.Exporter, error) {
	name := strings.ToLower(opts.format)
	exp, ok := export.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown format %q; valid formats: %s",
			opts.format, strings.Join(export.ValidFormats(), ", "))
	}

	switch name {
	case "json":
		if opts.indent > 0 {
			return &export.JSONExporter{Indent: strings.Repeat(" ", opts.indent)}, nil
		}
	case "listing":
		// Never colour a file on disk.
		if opts.output != "" {
			return exp, nil
		}
		color, err := useColor(opts.color, stdout)
		if err != nil {
			return nil, err
		}
		if color {
			return &export.ListingExporter{Color: true}, nil
		}
	}
	return exp, nil
}
