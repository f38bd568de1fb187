package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftcalc/internal/config"
	"github.com/claude/liftcalc/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (defaults and LIFTCALC_* env vars when empty)")
	serverURL := flag.String("server", "", "liftcalc server URL for remote mode (e.g. https://liftcalc.tail1234.ts.net)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftcalc-mcp", Version)
		return
	}

	// stdout carries the MCP protocol
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var calc mcp.Calculator = mcp.Local{}
	if *serverURL != "" {
		calc = mcp.NewHTTPClient(*serverURL)
		log.Info("remote mode", "server", *serverURL)
	}

	s := mcp.New(calc, mcp.Defaults{
		Plates:   cfg.Plates.LoadRequest(),
		Strategy: cfg.Plates.SolverStrategy(),
		Bias:     cfg.E1RM.Request().Bias,
	}, Version, log)

	if err := server.ServeStdio(s); err != nil {
		log.Error("serve MCP", "error", err)
		os.Exit(1)
	}
}
