// Command gkmanager-mcp serves the coach's training data to MCP clients over
// stdio. It opens the same database as the HTTP server; the account to scope
// queries to is given by flag since stdio transports carry no credentials.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/gkmanager/internal/config"
	"github.com/meltforce/gkmanager/internal/mcp"
	"github.com/meltforce/gkmanager/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	account := flag.String("account", "", "coach account to scope queries to")
	flag.Parse()

	// Logs go to stderr; stdout belongs to the MCP transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *account == "" {
		log.Error("-account is required")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.Open(ctx, cfg.Database.SQLDriver(), cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := mcp.New(db, Version, log)

	err = mcpserver.ServeStdio(srv,
		mcpserver.WithStdioContextFunc(func(ctx context.Context) context.Context {
			return mcp.WithAccount(ctx, *account)
		}),
	)
	if err != nil {
		log.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
