package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/boxcode/boxutil/internal/boxcode"
	"github.com/boxcode/boxutil/internal/catalog"
	"github.com/boxcode/boxutil/internal/db"
	"github.com/boxcode/boxutil/internal/stats"
)

func newFindCmd() *cobra.Command {
	var (
		filesOnly bool
		counts    bool
	)

	cmd := &cobra.Command{
		Use:   "find <command>",
		Short: "Find a command across the catalogued box code files",
		Long: `Search the catalog built by 'boxutil index' for every use of a command.

Each hit is printed as path:position: instruction, where position is the
1-based index of the instruction in its file.

Examples:
  boxutil find say
  boxutil find say --files
  boxutil find --counts`,
		Args: func(cmd *cobra.Command, args []string) error {
			if counts {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			root, err := findCatalogRoot(cwd)
			if err != nil {
				return err
			}
			debugf("catalog root: %s", root)

			database, err := db.Open(root)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer database.Close()
			store := catalog.NewStore(database)

			if counts {
				m, err := store.CommandCounts()
				if err != nil {
					return err
				}
				for _, c := range stats.SortCounts(m) {
					fmt.Printf("%6d  %s\n", c.Count, c.Command)
				}
				return nil
			}

			occ, err := store.FindByCommand(args[0])
			if err != nil {
				return err
			}
			if len(occ) == 0 {
				fmt.Fprintf(os.Stderr, "no occurrences of %q\n", args[0])
				return nil
			}

			last := ""
			for _, o := range occ {
				path := filepath.Join(root, filepath.FromSlash(o.Path))
				if rel, err := filepath.Rel(cwd, path); err == nil {
					path = rel
				}
				if filesOnly {
					if path != last {
						fmt.Println(path)
					}
					last = path
					continue
				}
				fmt.Printf("%s:%d: %s\n", path, o.Position, boxcode.FormatLine(o.Instruction))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&filesOnly, "files", false, "print only the paths of files that use the command")
	cmd.Flags().BoolVar(&counts, "counts", false, "print how often every command is used instead")

	return cmd
}
