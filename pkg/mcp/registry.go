package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"

	"github.com/urmzd/huemcp/pkg/schema"
)

var (
	// ErrUnknownTool indicates a call to a tool that is not registered
	ErrUnknownTool = errors.New("unknown tool")

	// ErrDuplicateTool indicates a tool name registered twice
	ErrDuplicateTool = errors.New("tool already registered")
)

// Handler serves one tool call with arguments that already passed the
// tool's input schema.
type Handler func(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error)

// Tool is a named, schema-validated operation.
type Tool struct {
	Name        string
	Description string
	Schema      json.RawMessage // JSON Schema of the arguments object
	ReadOnly    bool            // Does not change bridge or stored state
	Handler     Handler
}

// Registry holds the fixed set of tools and dispatches calls to them.
type Registry struct {
	validator *schema.Validator
	tools     map[string]Tool
	order     []string
}

// NewRegistry creates an empty registry validating with validator.
func NewRegistry(validator *schema.Validator) *Registry {
	return &Registry{
		validator: validator,
		tools:     make(map[string]Tool),
	}
}

// Register adds a tool. Names must be unique.
func (r *Registry) Register(tool Tool) error {
	if _, ok := r.tools[tool.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, tool.Name)
	}
	r.tools[tool.Name] = tool
	r.order = append(r.order, tool.Name)
	return nil
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Invoke validates args against the named tool's schema and runs it. A
// schema violation is returned as an error result naming the field; the
// handler is not called. Only an unknown tool or a broken schema produce a
// Go error.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if args == nil {
		args = map[string]any{}
	}

	logger := log.With().Str("tool", name).Str("call_id", uuid.NewString()).Logger()
	start := time.Now()

	if err := r.validator.Validate(tool.Schema, args); err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			logger.Info().Str("field", verr.Field).Str("reason", verr.Reason).Msg("Tool arguments rejected")
			return mcp.NewToolResultError(verr.Error()), nil
		}
		return nil, fmt.Errorf("tool %s: %w", name, err)
	}

	result, err := tool.Handler(ctx, args)
	if err != nil {
		logger.Error().Err(err).Dur("took", time.Since(start)).Msg("Tool call failed")
		return nil, err
	}

	logger.Debug().Bool("is_error", result.IsError).Dur("took", time.Since(start)).Msg("Tool call completed")
	return result, nil
}
