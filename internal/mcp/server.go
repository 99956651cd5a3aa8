// Package mcp exposes the exercise catalog to agents over the Model Context
// Protocol.
package mcp

import (
	"log/slog"

	"github.com/claude/fitclub/internal/similar"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("FitClub", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("FitClub exercise catalog. Search exercises by name, body part, target muscle or equipment, read exercise instructions, and find similar exercises."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolSearchExercises, Handler: h.searchExercises},
		server.ServerTool{Tool: toolGetExercise, Handler: h.getExercise},
		server.ServerTool{Tool: toolSimilarExercises, Handler: h.similarExercises},
		server.ServerTool{Tool: toolListBodyParts, Handler: h.listBodyParts},
	)

	s.AddResources(
		server.ServerResource{Resource: resBodyParts, Handler: h.bodyPartsResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

func (h *handlers) finder(limit int) *similar.Finder {
	return similar.NewFinder(h.ds, h.log, similar.WithLimit(limit))
}

// --- Resource definitions ---

var resBodyParts = mcp.NewResource(
	"fitclub://catalog/body_parts",
	"Body Parts",
	mcp.WithResourceDescription("Body parts present in the exercise catalog, usable as the body_part filter of search_exercises"),
	mcp.WithMIMEType("application/json"),
)
