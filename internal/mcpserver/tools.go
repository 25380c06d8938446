package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/edvin/dokdash/internal/dokploy"
	"github.com/edvin/dokdash/internal/inventory"
	"github.com/edvin/dokdash/internal/render"
)

const missingKeyMessage = "No API key provided. Set VITE_DOKPLOY_API_KEY environment variable."

type toolset struct {
	fetch  Fetcher
	logger zerolog.Logger
}

func readOnly() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
	}
}

func (t *toolset) serverTools() []server.ServerTool {
	categories := make([]string, len(inventory.Categories))
	for i, c := range inventory.Categories {
		categories[i] = string(c)
	}

	totalsOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Count projects, applications, databases (all five engines) and compose services."),
	}, readOnly()...)

	idsOpts := append([]mcp.ToolOption{
		mcp.WithDescription("List every identifier grouped by category, each with its name and owning project and environment."),
		mcp.WithString("category",
			mcp.Description("Only return this category"),
			mcp.Enum(categories...),
		),
	}, readOnly()...)

	projectsOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Render every project with its environments, resources and domains as indented text."),
	}, readOnly()...)

	return []server.ServerTool{
		{Tool: mcp.NewTool("dokploy_totals", totalsOpts...), Handler: t.totals},
		{Tool: mcp.NewTool("dokploy_ids", idsOpts...), Handler: t.ids},
		{Tool: mcp.NewTool("dokploy_projects", projectsOpts...), Handler: t.projects},
	}
}

// load fetches a snapshot or returns the tool error to report.
func (t *toolset) load(ctx context.Context, tool string) (*inventory.Snapshot, *mcp.CallToolResult) {
	if t.fetch == nil {
		return nil, mcp.NewToolResultError(missingKeyMessage)
	}
	projects, err := t.fetch(ctx)
	if err != nil {
		t.logger.Warn().Err(err).Str("tool", tool).Msg("fetch projects failed")
		return nil, mcp.NewToolResultError(err.Error())
	}
	return inventory.NewSnapshot(projects), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (t *toolset) totals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, errResult := t.load(ctx, "dokploy_totals")
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(snap.Totals)
}

func (t *toolset) ids(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("category", "")
	var category inventory.Category
	if name != "" {
		c, ok := inventory.ParseCategory(name)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown category %q", name)), nil
		}
		category = c
	}

	snap, errResult := t.load(ctx, "dokploy_ids")
	if errResult != nil {
		return errResult, nil
	}

	if category != "" {
		records := snap.IDs[category]
		if records == nil {
			records = []inventory.IDRecord{}
		}
		return jsonResult(records)
	}
	out := make(map[inventory.Category][]inventory.IDRecord, len(snap.IDs))
	for _, c := range snap.IDs.NonEmpty() {
		out[c] = snap.IDs[c]
	}
	return jsonResult(out)
}

func (t *toolset) projects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, errResult := t.load(ctx, "dokploy_projects")
	if errResult != nil {
		return errResult, nil
	}
	var buf bytes.Buffer
	if err := render.WriteText(&buf, render.Dashboard(snap.Projects, snap.Totals)); err != nil {
		return nil, fmt.Errorf("render projects: %w", err)
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// FetcherFor returns a Fetcher using the given credentials, or nil when
// apiKey is empty.
func FetcherFor(baseURL, apiKey string, opts ...dokploy.Option) Fetcher {
	if apiKey == "" {
		return nil
	}
	client := dokploy.NewClient(baseURL, apiKey, opts...)
	return client.FetchProjects
}
