package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/handpartners/pmfstudio/core"
	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	engine  *core.Engine
	history contract.HistoryStore
}

// parseSurveyArg decodes the survey_json tool argument.
func parseSurveyArg(request mcp.CallToolRequest) (schema.SurveyInput, error) {
	raw := request.GetString("survey_json", "")
	if raw == "" {
		return nil, fmt.Errorf("survey_json is required")
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("survey_json is not a valid JSON object: %w", err)
	}
	return schema.ParseSurvey(fields), nil
}

func (h *toolHandler) handleScoreSurvey(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, err := parseSurveyArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	eval := h.engine.Evaluate(in)

	name := request.GetString("startup_name", "")
	if h.history != nil {
		if _, err := h.history.RecordEvaluation(ctx, name, eval); err != nil {
			contract.LogWarn("recording evaluation", err)
		}
	}

	jsonData, _ := json.MarshalIndent(eval, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAssessQuality(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, err := parseSurveyArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	quality := core.AssessQuality(in)
	jsonData, _ := json.MarshalIndent(quality, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.history == nil {
		return mcp.NewToolResultError("history storage is not configured"), nil
	}

	limit := request.GetInt("limit", contract.DefaultHistoryLimit)
	records, err := h.history.ListEvaluations(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(records, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
