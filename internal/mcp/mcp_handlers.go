package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rmonroe/shotline/core"
	"github.com/rmonroe/shotline/internal/contract"
	"github.com/rmonroe/shotline/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	fetcher contract.Fetcher
	mgr     contract.StoreManager
}

func (h *toolHandler) handleGetYearlySummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Refresh = request.GetBool("refresh", false)

	summaries, _, err := core.GetYearlySummaries(ctx, cfg, h.fetcher, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("yearly aggregation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summaries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetGroupCounts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if g := request.GetString("group", ""); g != "" {
		cfg.Group = schema.GroupKey(g)
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	if _, ok := schema.ValidGroupKeys[cfg.Group]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid group key: %s", cfg.Group)), nil
	}

	counts, err := core.GetGroupCounts(ctx, cfg, h.fetcher, h.mgr, cfg.Group)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("group breakdown failed: %v", err)), nil
	}

	if cfg.ResultLimit > 0 && len(counts) > cfg.ResultLimit {
		counts = counts[:cfg.ResultLimit]
	}

	jsonData, _ := json.MarshalIndent(counts, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRunRegression(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Refresh = request.GetBool("refresh", false)

	result, err := core.GetRegression(ctx, cfg, h.fetcher, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("regression failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCleanReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	_, report, err := core.GetYearlySummaries(ctx, cfg, h.fetcher, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
