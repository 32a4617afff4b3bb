// Package mcptools exposes lens scoring as MCP tools over stdio.
package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/lenscheck/internal/assess"
	"github.com/dshills/lenscheck/internal/history"
)

// Deps are the shared dependencies of every tool.
type Deps struct {
	Store       *history.Store
	Version     string
	DefaultLens string
	DefaultRank assess.RankMode
}

// NewServer creates an MCP server with all lens tools registered.
func NewServer(d Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"lenscheck",
		d.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	listTool := NewListTool()
	s.AddTool(listTool.Definition(), listTool.Handle)

	questionsTool := NewQuestionsTool(d.DefaultLens)
	s.AddTool(questionsTool.Definition(), questionsTool.Handle)

	scoreTool := NewScoreTool(d)
	s.AddTool(scoreTool.Definition(), scoreTool.Handle)

	return s
}

// Serve runs the server on stdin/stdout until the client disconnects.
func Serve(d Deps) error {
	return server.ServeStdio(NewServer(d))
}
