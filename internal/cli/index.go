package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/boxcode/boxutil/internal/catalog"
	"github.com/boxcode/boxutil/internal/config"
	"github.com/boxcode/boxutil/internal/db"
	"github.com/boxcode/boxutil/internal/scanner"
	"github.com/boxcode/boxutil/internal/source"
)

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index [dir]",
		Short: "Catalog every box code file under a directory for `boxutil find`",
		Long: `Walk dir (default: the current directory) for .bx/.box files, parse them
and store their instructions in dir/.boxutil/catalog.db.

Files listed in .gitignore or in the project's exclude list are skipped.
Unchanged files are not re-parsed and files that no longer exist are removed
from the catalog.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}
			if cfg.Output.Verbose {
				verbose = true
			}
			if !cfg.Catalog.Enabled {
				return fmt.Errorf("the catalog is disabled in config ([catalog] enabled = false)")
			}
			project, err := config.LoadProject(root)
			if err != nil {
				return err
			}

			database, err := db.Open(root)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer database.Close()
			debugf("catalog: %s", database.Path())

			bar := progressbar.NewOptions(-1,
				progressbar.OptionSetDescription("  Indexing files"),
				progressbar.OptionSpinnerType(14),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)
			report, err := indexTree(root, cfg.Extensions, project.Exclude, catalog.NewStore(database), func() { _ = bar.Add(1) })
			_ = bar.Finish()
			if err != nil {
				return err
			}

			fmt.Printf("Indexed %d file(s) in %s: %d added, %d modified, %d removed, %d unchanged\n",
				report.total(), root, report.added, report.modified, report.removed, report.unchanged)
			if report.failed > 0 {
				fmt.Fprintf(os.Stderr, "  Warning: %d file(s) could not be read\n", report.failed)
			}
			return nil
		},
	}
}

type indexReport struct {
	added, modified, unchanged, removed, failed int
}

func (r indexReport) total() int { return r.added + r.modified + r.unchanged }

// indexTree catalogs every box file under root and prunes vanished ones.
// tick, if non-nil, is called once per file visited.
func indexTree(root string, exts, exclude []string, store *catalog.Store, tick func()) (indexReport, error) {
	var report indexReport

	result := scanner.Scan(scanner.ScanOptions{Root: root, Extensions: exts, Exclude: exclude})
	for _, err := range result.Errors {
		debugf("scan: %v", err)
	}

	seen := make(map[string]struct{}, len(result.Files))
	for _, rel := range result.Files {
		if tick != nil {
			tick()
		}
		seen[rel] = struct{}{}

		text, err := source.Read(filepath.Join(root, filepath.FromSlash(rel)), exts)
		if err != nil {
			warnf("%v", err)
			report.failed++
			continue
		}

		status, err := store.Index(rel, text)
		if err != nil {
			return report, fmt.Errorf("index %s: %w", rel, err)
		}
		switch status {
		case catalog.StatusAdded:
			report.added++
		case catalog.StatusModified:
			report.modified++
		default:
			report.unchanged++
		}
		debugf("indexed %s (status %d)", rel, status)
	}

	files, err := store.ListFiles()
	if err != nil {
		return report, err
	}
	for _, f := range files {
		if _, ok := seen[f.Path]; ok {
			continue
		}
		if err := store.DeleteFile(f.ID); err != nil {
			return report, fmt.Errorf("prune %s: %w", f.Path, err)
		}
		report.removed++
	}
	return report, nil
}

// findCatalogRoot walks up from dir to the nearest directory with a catalog.
func findCatalogRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	for {
		if _, err := os.Stat(config.CatalogPath(dir)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no catalog found; run `boxutil index` first")
		}
		dir = parent
	}
}
