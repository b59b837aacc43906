// cmd/web/main.go
//
// Campus – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load configuration (defaults → .env → conf/global.yaml → CAMPUS_*),
//     resolving vault: references when VAULT_ADDR is set.
//
//  2. Start the daily rotating logger (tees to console when running in a
//     TTY).
//
//  3. Open the optional GeoLite2 database for request enrichment.
//
//  4. Open the MySQL pool and, when database.migrate is true, apply the
//     embedded schema migrations.
//
//  5. Assemble the app (sessions, forms, renderer, locals composer, and
//     components) and build the chi router.
//
//  6. Serve until SIGINT or SIGTERM, then drain in-flight requests.  SIGHUP
//     clears the catalog cache, e.g. after running cmd/seed.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/yanizio/campus/internal/app"
	"github.com/yanizio/campus/internal/config"
	"github.com/yanizio/campus/internal/database"
	"github.com/yanizio/campus/internal/logger"
	"github.com/yanizio/campus/internal/requestinfo"
	"github.com/yanizio/campus/internal/server"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("campus: %v", err)
	}
}

func run(ctx context.Context) error {
	//
	// ── 1.  Configuration ───────────────────────────────────────────────
	//
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	//
	// ── 2.  Logger ──────────────────────────────────────────────────────
	//
	logOut, err := logger.New(cfg.Paths.Root, cfg.Log.Level, runningInTTY())
	if err != nil {
		return err
	}
	defer func() { _ = logOut.Sync() }()
	logOut.Infow("config loaded", "root", cfg.Paths.Root, "env", cfg.App.Environment)

	//
	// ── 3.  Geo lookup (optional) ───────────────────────────────────────
	//
	if err := requestinfo.InitGeo(cfg.Paths.GeoIP); err != nil {
		logOut.Warnw("geo lookup disabled", "err", err)
	}
	defer func() { _ = requestinfo.CloseGeo() }()

	//
	// ── 4.  Database ────────────────────────────────────────────────────
	//
	opts := database.DefaultOptions
	opts.MaxOpenConns = cfg.Database.MaxOpen
	opts.MaxIdleConns = cfg.Database.MaxIdle
	db, err := database.OpenWithOptions(ctx, cfg.Database.DSN, opts)
	if err != nil {
		return err
	}
	defer db.Close()
	logOut.Infow("database online")

	if cfg.Database.Migrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
		logOut.Infow("migrations applied")
	}

	//
	// ── 5.  App + router ────────────────────────────────────────────────
	//
	a, err := app.New(cfg, db)
	if err != nil {
		return err
	}
	h, err := a.Router()
	if err != nil {
		return err
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go a.RefreshOn(ctx, hup)

	//
	// ── 6.  Serve ───────────────────────────────────────────────────────
	//
	return server.Run(ctx, server.New(cfg.HTTP.ListenAddr, h))
}
