package cli

import (
	"fmt"
	"os"

	"github.com/boxcode/boxutil/internal/config"
)

// verbose is set by --verbose or output.verbose in config.
var verbose bool

func debugf(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "  debug: "+format+"\n", args...)
	}
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "  warn: "+format+"\n", args...)
}

// loadConfig returns the effective config for the working directory.
func loadConfig() (config.GlobalConfig, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return config.DefaultGlobal(), fmt.Errorf("get working directory: %w", err)
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return cfg, err
	}
	if cfg.Output.Verbose {
		verbose = true
	}
	debugf("config: format=%s color=%s extensions=%v", cfg.Output.Format, cfg.Output.Color, cfg.Extensions)
	return cfg, nil
}
