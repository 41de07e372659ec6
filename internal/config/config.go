// Package config manages global (~/.config/boxutil/config.toml) and
// per-project (.boxutil/config.toml) configuration for boxutil.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// projectDir is the per-project directory holding config and the catalog.
const projectDir = ".boxutil"

// GlobalConfig holds user-wide settings.
type GlobalConfig struct {
	Extensions []string      `toml:"extensions"`
	Output     OutputConfig  `toml:"output"`
	Watch      WatchConfig   `toml:"watch"`
	Catalog    CatalogConfig `toml:"catalog"`
}

// OutputConfig controls rendering defaults.
type OutputConfig struct {
	Format  string `toml:"format"`
	Color   string `toml:"color"` // auto, always, never
	Indent  int    `toml:"indent"`
	Verbose bool   `toml:"verbose"`
}

type WatchConfig struct {
	DebounceMs int `toml:"debounce_ms"`
}

// CatalogConfig controls the SQLite index built by `boxutil index`.
type CatalogConfig struct {
	Enabled bool `toml:"enabled"`
}

// ProjectConfig holds per-project overrides stored in .boxutil/config.toml.
// Zero values mean "inherit".
type ProjectConfig struct {
	Extensions []string `toml:"extensions"`
	Format     string   `toml:"format"`
	Exclude    []string `toml:"exclude"`
}

// DefaultGlobal returns sensible defaults.
func DefaultGlobal() GlobalConfig {
	return GlobalConfig{
		Extensions: []string{".bx", ".box"},
		Output: OutputConfig{
			Format: "raw",
			Color:  "auto",
			Indent: 0,
		},
		Watch: WatchConfig{
			DebounceMs: 200,
		},
		Catalog: CatalogConfig{
			Enabled: true,
		},
	}
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "boxutil", "config.toml"), nil
}

// LoadGlobal loads the global config, applying defaults for any missing values.
func LoadGlobal() (GlobalConfig, error) {
	cfg := DefaultGlobal()

	path, err := GlobalConfigPath()
	if err != nil {
		return cfg, nil // Return defaults if we can't determine home dir.
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config: load global: %w", err)
		}
	}

	if v := os.Getenv("BOXUTIL_FORMAT"); v != "" {
		cfg.Output.Format = v
	}

	return cfg, nil
}

// SaveGlobal writes the global config to disk.
func SaveGlobal(cfg GlobalConfig) error {
	path, err := GlobalConfigPath()
	if err != nil {
		return err
	}
	return writeTOML(path, cfg)
}

// LoadProject loads .boxutil/config.toml from the given project root.
func LoadProject(root string) (ProjectConfig, error) {
	var cfg ProjectConfig
	path := filepath.Join(ProjectDirPath(root), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: load project: %w", err)
	}
	return cfg, nil
}

// SaveProject writes the project config to .boxutil/config.toml.
func SaveProject(root string, cfg ProjectConfig) error {
	return writeTOML(filepath.Join(ProjectDirPath(root), "config.toml"), cfg)
}

// ProjectDirPath returns the path to the project's .boxutil/ directory.
func ProjectDirPath(root string) string {
	return filepath.Join(root, projectDir)
}

// CatalogPath returns the path to the project's SQLite catalog.
func CatalogPath(root string) string {
	return filepath.Join(root, projectDir, "catalog.db")
}

// Load returns the effective config for a project root (global merged with project).
func Load(root string) (GlobalConfig, error) {
	global, err := LoadGlobal()
	if err != nil {
		return global, err
	}

	project, err := LoadProject(root)
	if err != nil {
		return global, err
	}
	if len(project.Extensions) > 0 {
		global.Extensions = project.Extensions
	}
	// The environment still wins over a project's format.
	if project.Format != "" && os.Getenv("BOXUTIL_FORMAT") == "" {
		global.Output.Format = project.Format
	}
	return global, nil
}

func writeTOML(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(v)
}
