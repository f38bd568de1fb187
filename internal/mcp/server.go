package mcp

import (
	"log/slog"

	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/rpe"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Defaults fill tool arguments the caller leaves out.
type Defaults struct {
	Plates   plates.LoadRequest
	Strategy plates.Strategy
	Bias     rpe.Bias
}

// New creates an MCP server with all tools and resources registered.
func New(calc Calculator, defaults Defaults, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("liftcalc", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("liftcalc strength calculators. Estimate a one-rep max from a set's weight, reps and RPE, look up RPE percentage charts, and work out which plates to load on a barbell. All weights are in kilograms."),
	)

	h := &handlers{calc: calc, defaults: defaults, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolEstimateE1RM, Handler: h.estimateE1RM},
		server.ServerTool{Tool: toolSolvePlates, Handler: h.solvePlates},
		server.ServerTool{Tool: toolGetRPETable, Handler: h.getRPETable},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resPlateCatalog, Handler: h.plateCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	calc     Calculator
	defaults Defaults
	log      *slog.Logger
}

// --- Resource definitions ---

var resPlateCatalog = mcp.NewResource(
	"liftcalc://plate_catalog",
	"Plate Catalog",
	mcp.WithResourceDescription("Every plate class with its weight, color and physical size, heaviest first"),
	mcp.WithMIMEType("application/json"),
)
