package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	fcmcp "github.com/claude/fitclub/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("url", "", "FitClub server URL (e.g. https://fitclub.tail1234.ts.net)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("fitclub-mcp", Version)
		return
	}

	// stdout carries the protocol, so logs go to stderr
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: fitclub-mcp -url <FitClub server URL>\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	s := fcmcp.New(fcmcp.NewHTTPClient(*serverURL), Version, log)
	log.Info("MCP stdio server starting", "remote", *serverURL)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("MCP server error", "error", err)
		os.Exit(1)
	}
}
