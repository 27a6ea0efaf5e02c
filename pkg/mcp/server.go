package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/urmzd/huemcp/pkg/lights"
	"github.com/urmzd/huemcp/pkg/schema"
)

// Version is reported to MCP clients during initialization
const Version = "1.0.0"

// Server exposes the light service as MCP tools
type Server struct {
	mcpServer *server.MCPServer
	registry  *Registry
	service   *lights.Service
}

// NewServer creates a new MCP server for light group control
func NewServer(service *lights.Service, validator *schema.Validator) (*Server, error) {
	s := &Server{
		service:  service,
		registry: NewRegistry(validator),
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	s.mcpServer = server.NewMCPServer(
		"huemcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	for _, tool := range s.registry.Tools() {
		s.mcpServer.AddTool(toMCPTool(tool), s.dispatch(tool.Name))
	}

	return s, nil
}

// Registry returns the tool registry
func (s *Server) Registry() *Registry {
	return s.registry
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) dispatch(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.registry.Invoke(ctx, name, request.GetArguments())
	}
}

func toMCPTool(tool Tool) mcp.Tool {
	t := mcp.NewToolWithRawSchema(tool.Name, tool.Description, tool.Schema)
	opts := []mcp.ToolOption{
		mcp.WithReadOnlyHintAnnotation(tool.ReadOnly),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}
