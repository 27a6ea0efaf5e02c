package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/urmzd/huemcp/pkg/lights"
	"github.com/urmzd/huemcp/pkg/schema"
)

func (s *Server) handleGetGroups(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	groups, err := s.service.ListGroups(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list light groups: %s", err)), nil
	}
	return mcp.NewToolResultText(formatJSON(groups)), nil
}

func (s *Server) handleSetColor(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var in SetColorInput
	if err := bind(args, &in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.SetColors(ctx, in.Groups)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !result.OK() {
		return batchReport(result), nil
	}
	return mcp.NewToolResultText(ColorSetMessage), nil
}

func (s *Server) handleGetBrightness(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var in GetBrightnessInput
	if err := bind(args, &in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.service.GetBrightness(ctx, in.IDs())
	if !result.OK() {
		return batchReport(result), nil
	}
	return mcp.NewToolResultText(formatJSON(result.Brightnesses())), nil
}

func (s *Server) handleSetBrightness(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var in SetBrightnessInput
	if err := bind(args, &in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.service.SetBrightness(ctx, in.Groups)
	if !result.OK() {
		return batchReport(result), nil
	}
	return mcp.NewToolResultText(formatJSON(result.Levels())), nil
}

func (s *Server) handleSetLocalizedName(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var in SetLocalizedNameInput
	if err := bind(args, &in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	group, err := s.service.SetLocalizedName(ctx, in.ID, in.Name)
	if err != nil {
		if errors.Is(err, lights.ErrUnknownGroup) || errors.Is(err, schema.ErrValidation) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to set localized name: %s", err)), nil
	}
	return mcp.NewToolResultText(formatJSON(group)), nil
}

// batchReport describes every group of a batch that had failures. It is
// an error result only when no group succeeded.
func batchReport(result lights.BatchResult) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(formatJSON(result))},
		IsError: result.AllFailed(),
	}
}

// bind decodes validated arguments into a typed input.
func bind(args map[string]any, target any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to read arguments: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to read arguments: %w", err)
	}
	return nil
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
