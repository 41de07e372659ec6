package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/boxcode/boxutil/internal/boxcode"
	"github.com/boxcode/boxutil/internal/export"
)

func (s *Server) handleParse(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: source"), nil
	}
	return render("json", export.NewDocument("", src))
}

func (s *Server) handleList(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: source"), nil
	}
	return render("listing", export.NewDocument("", src))
}

func (s *Server) handleFormat(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("instructions")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: instructions"), nil
	}

	ins, err := export.DecodeJSON([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid instructions: %v", err)), nil
	}
	return mcp.NewToolResultText(boxcode.Format(ins)), nil
}

func (s *Server) handleFind(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	command, err := req.RequireString("command")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: command"), nil
	}
	if s.store == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no catalog in %s; run `boxutil index` first", s.root)), nil
	}

	occ, err := s.store.FindByCommand(command)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(occ) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No occurrences of %q.", command)), nil
	}

	var sb strings.Builder
	for _, o := range occ {
		fmt.Fprintf(&sb, "%s:%d: %s\n", o.Path, o.Position, boxcode.FormatLine(o.Instruction))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func render(format string, doc export.Document) (*mcp.CallToolResult, error) {
	exp, _ := export.Get(format)
	out, err := exp.Export(doc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render %s: %v", format, err)), nil
	}
	return mcp.NewToolResultText(out), nil
}
