package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"animehub/internal/config"
	"animehub/internal/mal"
	"animehub/internal/pipeline"
	"animehub/internal/record"
	"animehub/pkg/genres"
)

func main() {
	var (
		usersIn   = flag.String("users", "", "username source CSV (default <data-dir>/user.csv)")
		outDir    = flag.String("out", "", "output directory for record CSVs (default <data-dir>)")
		genresCSV = flag.String("genres", "", "optional genre table CSV (default: built-in enumeration)")
	)
	flag.Parse()

	cfg := config.Load()
	if cfg.MALClientID == "" {
		log.Fatalf("ANIMEHUB_MAL_CLIENT_ID is not set")
	}

	if *usersIn == "" {
		*usersIn = filepath.Join(cfg.DataDir, "user.csv")
	}
	if *outDir == "" {
		*outDir = cfg.DataDir
	}

	table := genres.Default()
	if *genresCSV != "" {
		var err error
		table, err = genres.Load(*genresCSV)
		if err != nil {
			log.Fatalf("load genre table failed: %v", err)
		}
	}

	// The username source must be fully read before any fetch starts;
	// a missing file aborts here, with nothing touched.
	usernames, err := record.ReadUsernames(*usersIn)
	if err != nil {
		log.Fatalf("read usernames failed: %v", err)
	}
	if len(usernames) == 0 {
		log.Fatalf("no usernames in %s", *usersIn)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := mal.NewClient(cfg.MALClientID)
	opts := pipeline.Options{
		BatchSize:       cfg.BatchSize(),
		InterBatchDelay: cfg.InterBatchDelay(),
	}

	result, err := pipeline.Run(ctx, opts, usernames, client, table)
	if err != nil {
		log.Fatalf("pipeline run failed: %v", err)
	}

	if err := record.WriteAll(*outDir, result.Records); err != nil {
		log.Fatalf("write records failed: %v", err)
	}

	for _, f := range result.Failures {
		log.Printf("[fetch] skipped user %s: %v", f.Username, f.Err)
	}
	log.Printf("✅ run %s: %d/%d users fetched, records written to %s",
		result.RunID, result.Fetched, len(usernames), *outDir)

	if len(result.Failures) == len(usernames) {
		// nothing at all came back; make the failure visible to operators
		os.Exit(1)
	}
}
