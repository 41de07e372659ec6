package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/boxcode/boxutil/internal/source"
)

func newWatchCmd() *cobra.Command {
	var (
		opts       renderOptions
		debounceMs int
	)

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-render a box code file every time it changes",
		Long: `Render the file once, then watch it and render again after every change.

Rapid successive writes (editors often save in several steps) are debounced
into a single render. Render errors are reported and watching continues.

Press Ctrl-C to stop.

Examples:
  boxutil watch prog.box -f listing
  boxutil watch prog.box -f json -o prog.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyRenderDefaults(&opts, cmd, cfg)
			if !cmd.Flags().Changed("debounce") {
				debounceMs = cfg.Watch.DebounceMs
			}

			path := args[0]
			if err := source.CheckExtension(path, cfg.Extensions); err != nil {
				return err
			}
			target, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()

			// Watch the directory: editors that save by rename replace the inode.
			if err := watcher.Add(filepath.Dir(target)); err != nil {
				return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
			}

			render := func() {
				if err := renderFile(path, opts, cfg.Extensions, os.Stdout); err != nil {
					fmt.Fprintf(os.Stderr, "  render error: %v\n", err)
					return
				}
				if opts.output != "" {
					fmt.Fprintf(os.Stderr, "[%s] wrote %s\n", time.Now().Format("15:04:05"), opts.output)
				}
			}

			// Fail fast with a classified error if the file cannot be read at all.
			if _, err := source.Read(path, cfg.Extensions); err != nil {
				return err
			}
			render()

			debounce := debounceInterval(debounceMs)
			fmt.Fprintf(os.Stderr, "Watching %s (debounce %s). Press Ctrl-C to stop.\n", path, debounce)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			// Armed only by file events; go1.23 timers drop any value
			// pending at Stop.
			timer := time.NewTimer(debounce)
			timer.Stop()

			for {
				select {
				case <-sigCh:
					fmt.Fprintln(os.Stderr, "\nStopping watcher.")
					return nil

				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if !isTargetEvent(event, target) {
						continue
					}
					if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
						debugf("%s removed; waiting for it to reappear", path)
						continue
					}
					timer.Reset(debounce)

				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintf(os.Stderr, "  watch error: %v\n", err)

				case <-timer.C:
					if opts.output == "" {
						fmt.Fprintf(os.Stderr, "--- %s %s ---\n", time.Now().Format("15:04:05"), path)
					}
					render()
				}
			}
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format (default from config, else raw)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().IntVar(&opts.indent, "indent", 0, "indent JSON output by this many spaces")
	cmd.Flags().StringVar(&opts.color, "color", "", "colour the listing: auto, always, never")
	cmd.Flags().IntVar(&debounceMs, "debounce", 200, "debounce interval in milliseconds")

	return cmd
}

// debounceInterval converts a configured millisecond count, treating zero
// or negative values as 1ms.
func debounceInterval(ms int) time.Duration {
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}

// isTargetEvent reports whether event concerns the watched file.
func isTargetEvent(event fsnotify.Event, target string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == target
}
