package mcp

import (
	"context"

	"github.com/ka2n/yure/api"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ReportGenerator produces one report per call
type ReportGenerator interface {
	Generate(ctx context.Context) api.Result
}

// Server represents the MCP server for yure
type Server struct {
	server *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(gen ReportGenerator, query api.Query) *Server {
	s := server.NewMCPServer("yure", api.Version)

	s.AddTools(InitTools(gen, query)...)

	return &Server{
		server: s,
	}
}

// Run starts the MCP server
func (s *Server) Run() error {
	return server.ServeStdio(s.server)
}

func newServerTool(tool mcp.Tool, handler server.ToolHandlerFunc) server.ServerTool {
	return server.ServerTool{
		Tool:    tool,
		Handler: handler,
	}
}
