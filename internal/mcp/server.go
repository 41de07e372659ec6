// Package mcp exposes the box code parser and formatter as MCP tools over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/boxcode/boxutil/internal/catalog"
)

// Server holds the state shared by tool handlers.
type Server struct {
	root  string
	store *catalog.Store // nil when the project has no catalog
	mcp   *server.MCPServer
}

// NewServer builds an MCP server for the project at root. store may be nil,
// in which case find_command reports that no catalog is available.
func NewServer(root, version string, store *catalog.Store) *Server {
	s := &Server{
		root:  root,
		store: store,
		mcp:   server.NewMCPServer("boxutil", version, server.WithToolCapabilities(false)),
	}
	s.registerTools()
	return s
}

// ServeStdio blocks serving requests on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("parse_box",
		mcp.WithDescription("Parse box code into a JSON array of {cmd, args} instructions. Comments and blank lines are dropped."),
		mcp.WithString("source", mcp.Required(), mcp.Description("box code text")),
	), s.handleParse)

	s.mcp.AddTool(mcp.NewTool("format_box",
		mcp.WithDescription("Render a JSON array of {cmd, args} instructions as canonical box code."),
		mcp.WithString("instructions", mcp.Required(), mcp.Description(`JSON array, e.g. [{"cmd":"say","args":["hi"]}]`)),
	), s.handleFormat)

	s.mcp.AddTool(mcp.NewTool("list_box",
		mcp.WithDescription("Render box code as a numbered, human-readable listing."),
		mcp.WithString("source", mcp.Required(), mcp.Description("box code text")),
	), s.handleList)

	s.mcp.AddTool(mcp.NewTool("find_command",
		mcp.WithDescription("Find every occurrence of a command in the project's box code catalog (built by `boxutil index`)."),
		mcp.WithString("command", mcp.Required(), mcp.Description("command name to search for")),
	), s.handleFind)
}
