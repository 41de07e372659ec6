package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boxcode/boxutil/internal/catalog"
	"github.com/boxcode/boxutil/internal/db"
	boxmcp "github.com/boxcode/boxutil/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the parser and formatter as MCP tools over stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing:

  parse_box     box code -> JSON instructions
  format_box    JSON instructions -> canonical box code
  list_box      box code -> numbered listing
  find_command  search the catalog built by 'boxutil index'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}

			var store *catalog.Store
			if root, err := findCatalogRoot(cwd); err == nil {
				database, err := db.Open(root)
				if err != nil {
					return fmt.Errorf("open catalog: %w", err)
				}
				defer database.Close()
				store = catalog.NewStore(database)
				cwd = root
			}

			return boxmcp.NewServer(cwd, version, store).ServeStdio()
		},
	}
}
