// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/handpartners/pmfstudio/core"
	"github.com/handpartners/pmfstudio/internal/contract"
)

// NewMCPServer initializes and configures the PMF scoring MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(engine *core.Engine, history contract.HistoryStore) *server.MCPServer {
	s := server.NewMCPServer(
		"PMF Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		engine:  engine,
		history: history,
	}

	// --- 1. Tool: score_survey ---
	s.AddTool(mcp.NewTool("score_survey",
		mcp.WithDescription("Score a startup PMF survey and return the gated score, stage, component breakdown and data quality."),
		mcp.WithString("survey_json", mcp.Description("The survey responses as a JSON object mapping field names to answers."), mcp.Required()),
		mcp.WithString("startup_name", mcp.Description("Name of the startup the survey belongs to.")),
	), h.handleScoreSurvey)

	// --- 2. Tool: assess_quality ---
	s.AddTool(mcp.NewTool("assess_quality",
		mcp.WithDescription("Estimate how substantively a PMF survey was filled in, without computing a score."),
		mcp.WithString("survey_json", mcp.Description("The survey responses as a JSON object mapping field names to answers."), mcp.Required()),
	), h.handleAssessQuality)

	// --- 3. Tool: list_history ---
	s.AddTool(mcp.NewTool("list_history",
		mcp.WithDescription("List previously scored surveys, newest first."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleListHistory)

	return s
}

// StartMCPServer starts the PMF scoring MCP server over stdio.
func StartMCPServer(_ context.Context, engine *core.Engine, history contract.HistoryStore) error {
	s := NewMCPServer(engine, history)
	return server.ServeStdio(s)
}
