// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rmonroe/shotline/internal/contract"
)

// NewMCPServer initializes and configures the Shotline MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, fetcher contract.Fetcher, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Shotline Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		fetcher: fetcher,
		mgr:     mgr,
	}

	// --- 1. Tool: get_yearly_summary ---
	s.AddTool(mcp.NewTool("get_yearly_summary",
		mcp.WithDescription("Aggregate the NYPD shooting incident data by year, returning total incidents and total deaths per year."),
		mcp.WithBoolean("refresh", mcp.Description("Re-download the dataset instead of using the stored copy.")),
	), h.handleGetYearlySummary)

	// --- 2. Tool: get_group_counts ---
	s.AddTool(mcp.NewTool("get_group_counts",
		mcp.WithDescription("Break down shooting incidents by a categorical field such as borough or victim sex."),
		mcp.WithString("group", mcp.Description("Grouping key. Defaults to the server's configured group key ('vic-sex' unless overridden)."), mcp.Enum("borough", "vic-sex", "vic-race", "perp-sex", "perp-race")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetGroupCounts)

	// --- 3. Tool: run_regression ---
	s.AddTool(mcp.NewTool("run_regression",
		mcp.WithDescription("Fit an ordinary least squares regression of annual deaths on annual incidents. Returns slope, intercept, R-squared and p-value."),
		mcp.WithBoolean("refresh", mcp.Description("Re-download the dataset instead of using the stored copy.")),
	), h.handleRunRegression)

	// --- 4. Tool: get_clean_report ---
	s.AddTool(mcp.NewTool("get_clean_report",
		mcp.WithDescription("Report what cleaning did to the raw feed: rows read, rows kept, rows dropped for missing jurisdiction code and columns discarded."),
	), h.handleGetCleanReport)

	return s
}

// StartMCPServer starts the Shotline MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, fetcher contract.Fetcher, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, fetcher, mgr)
	return server.ServeStdio(s)
}
