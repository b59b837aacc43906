// cmd/seed/main.go
//
// Campus – load fixture data into the database.
//
// Usage
// -----
//
//	seed [-migrate] conf/seed.yaml
//
// Courses and faculty are upserted by their unique keys (course code,
// faculty email), users by email with the password re-hashed.  The run is
// one transaction: a bad row leaves the database unchanged.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/yanizio/campus/internal/auth"
	"github.com/yanizio/campus/internal/config"
	"github.com/yanizio/campus/internal/database"
	"github.com/yanizio/campus/internal/logger"
	"github.com/yanizio/campus/internal/store"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply schema migrations first")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-migrate] <seed.yaml>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, flag.Arg(0), *migrate); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run(ctx context.Context, path string, migrate bool) error {
	seed, err := store.LoadSeed(path)
	if err != nil {
		return err
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	logOut, err := logger.New(cfg.Paths.Root, cfg.Log.Level, true)
	if err != nil {
		return err
	}
	defer func() { _ = logOut.Sync() }()

	db, err := database.OpenWithOptions(ctx, cfg.Database.DSN, database.DefaultOptions)
	if err != nil {
		return err
	}
	defer db.Close()

	if migrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	if err := store.New(db).Apply(ctx, seed, auth.HashPassword); err != nil {
		return err
	}
	logOut.Infow("seed applied",
		"courses", len(seed.Courses),
		"faculty", len(seed.Faculty),
		"users", len(seed.Users),
	)
	return nil
}
