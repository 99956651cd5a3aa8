package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/fitclub"
	"github.com/claude/fitclub/internal/catalog"
	"github.com/claude/fitclub/internal/config"
	fcmcp "github.com/claude/fitclub/internal/mcp"
	"github.com/claude/fitclub/internal/server"
	"github.com/claude/fitclub/internal/similar"
	"github.com/claude/fitclub/internal/storage"
	"github.com/claude/fitclub/internal/view"
	"github.com/google/uuid"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	seed := flag.Bool("seed", false, "load the built-in exercise catalog when the database is empty")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("FitClub starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Run migrations
	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	// Connect database
	ctx := context.Background()
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	importer := catalog.NewImporter(db, nil, log, false)

	if *seed {
		if err := seedIfEmpty(ctx, db, importer, log); err != nil {
			log.Error("seeding catalog failed", "error", err)
			os.Exit(1)
		}
	}

	finder := similar.NewFinder(db, log,
		similar.WithLimit(cfg.Render.SimilarLimit),
		similar.WithTimeout(cfg.Render.SectionTimeout),
		similar.WithSourceURL(func(id uuid.UUID, kind similar.Kind) string {
			return view.SimilarPath(id, string(kind))
		}),
	)

	// Create server
	srv := server.New(db, finder, importer, server.Options{
		APIKey:   cfg.Auth.APIKey,
		PageSize: cfg.Render.PageSize,
	}, log)
	srv.SetStatic(fitclub.StaticFS)

	if cfg.MCP.Enabled {
		srv.Mount("/mcp", mcpserver.NewStreamableHTTPServer(fcmcp.New(db, Version, log)))
		log.Info("MCP endpoint enabled", "path", "/mcp")
	}

	// Start server on tsnet or plain HTTP
	var listener net.Listener

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// seedIfEmpty loads the embedded catalog into an empty database. A database
// that already has exercises is left alone.
func seedIfEmpty(ctx context.Context, db *storage.DB, importer *catalog.Importer, log *slog.Logger) error {
	n, err := db.CountExercises(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("catalog already populated, not seeding", "exercises", n)
		return nil
	}
	stats, err := importer.ImportSeed(ctx)
	if err != nil {
		return err
	}
	log.Info("catalog seeded", "exercises", stats.Received, "upserted", stats.Upserted)
	return nil
}
