// Package mcp exposes the batch engine to external callers as MCP tools.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ldmerino/organizadorArchivos/internal/batch"
	"github.com/ldmerino/organizadorArchivos/internal/config"
)

// Server wraps the MCP server instance around the batch engine.
type Server struct {
	config    *config.Config
	engine    *batch.Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.Config, engine *batch.Engine) (*Server, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		engine:    engine,
		mcpServer: mcpServer,
	}
	s.registerTools()
	return s, nil
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	splitTool := mcp.NewTool(
		"organizer_split",
		mcp.WithDescription("Split a multi-page labor-document PDF into one file per page, named after the worker identified on each page"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Full path to the multi-page PDF"),
		),
		mcp.WithString("destination",
			mcp.Required(),
			mcp.Description("Folder for the single-page output files"),
		),
	)
	s.mcpServer.AddTool(splitTool, s.handleBatch(batch.ModeSplit))

	renameTool := mcp.NewTool(
		"organizer_rename",
		mcp.WithDescription("Copy each PDF in a folder under a name extracted from its first page; originals are never modified"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Folder containing single-document PDFs"),
		),
		mcp.WithString("destination",
			mcp.Required(),
			mcp.Description("Folder for the renamed copies"),
		),
	)
	s.mcpServer.AddTool(renameTool, s.handleBatch(batch.ModeRename))

	organizeTool := mcp.NewTool(
		"organizer_organize",
		mcp.WithDescription("Regroup already-renamed documents from categorized subfolders into one folder per worker"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Folder whose categorized subfolders hold processed PDFs"),
		),
		mcp.WithString("destination",
			mcp.Required(),
			mcp.Description("Folder for the per-worker folders"),
		),
	)
	s.mcpServer.AddTool(organizeTool, s.handleBatch(batch.ModeOrganize))

	previewTool := mcp.NewTool(
		"organizer_preview",
		mcp.WithDescription("Preview what a batch operation would produce, without writing anything"),
		mcp.WithString("op",
			mcp.Required(),
			mcp.Description("Operation to preview: split, rename or organize"),
		),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Source file or folder"),
		),
	)
	s.mcpServer.AddTool(previewTool, s.handlePreview)
}

// handleBatch returns a handler that runs one batch operation to completion
// and renders its results. Tool calls are synchronous; progress streaming
// is a library-level concern.
func (s *Server) handleBatch(mode batch.Mode) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		source, err := request.RequireString("source")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		destination, err := request.RequireString("destination")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		run := s.engine.Start(ctx, batch.Config{
			Source:      source,
			Destination: destination,
			Mode:        mode,
		})

		var results []batch.ProcessResult
		for ev := range run.Events() {
			switch ev.Type {
			case batch.EventResults:
				results = ev.Results
			case batch.EventError:
				return mcp.NewToolResultError(ev.Err), nil
			}
		}
		if run.State() == batch.StateCancelled {
			return mcp.NewToolResultError("run cancelled"), nil
		}

		return mcp.NewToolResultText(formatResults(mode, results)), nil
	}
}

func (s *Server) handlePreview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	op, err := request.RequireString("op")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	source, err := request.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	preview, err := s.engine.Preview(batch.Config{Source: source, Mode: batch.Mode(op)})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Preview (%s): %d total units\n", preview.Mode, preview.TotalUnits)
	for _, sample := range preview.Samples {
		if sample.Identity != "" {
			fmt.Fprintf(&sb, "  %s -> %s (%s)\n", sample.Label, sample.NewName, sample.Identity)
		} else {
			fmt.Fprintf(&sb, "  %s -> no identity found\n", sample.Label)
		}
	}
	if preview.Truncated {
		sb.WriteString("  ... (sample truncated)\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatResults(mode batch.Mode, results []batch.ProcessResult) string {
	summary := batch.Summarize(results)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Operation %s completed: %d processed, %d successful, %d failed (%.1f%%)\n",
		mode, summary.Total, summary.Successful, summary.Failed, summary.SuccessRate)
	fmt.Fprintf(&sb, "Unique identities: %d, units processed: %d\n\n",
		summary.UniqueIdentities, summary.TotalUnits)

	for _, r := range results {
		if r.Success {
			fmt.Fprintf(&sb, "  OK  %s -> %s (%s)\n", r.OriginalLabel, r.NewName, r.Identity)
		} else {
			fmt.Fprintf(&sb, "  ERR %s: %s\n", r.OriginalLabel, r.Error)
		}
	}
	return sb.String()
}

// Run starts the MCP server on stdio. The parent process controls the
// lifecycle; log output must stay off stdout.
func (s *Server) Run(_ context.Context) error {
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
