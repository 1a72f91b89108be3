package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"animehub/internal/config"
	"animehub/internal/load"
	"animehub/internal/record"
	"animehub/pkg/database"
	"animehub/pkg/genres"
)

func main() {
	var (
		dataDir    = flag.String("data", "", "directory holding the record CSVs (default from env)")
		genresCSV  = flag.String("genres", "", "optional genre table CSV (default: built-in enumeration)")
		initSchema = flag.Bool("init-schema", false, "apply docs/schema.sql before loading (the schema is normally owned by the store)")
	)
	flag.Parse()

	cfg := config.Load()
	if *dataDir == "" {
		*dataDir = cfg.DataDir
	}

	table := genres.Default()
	if *genresCSV != "" {
		var err error
		table, err = genres.Load(*genresCSV)
		if err != nil {
			log.Fatalf("load genre table failed: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if *initSchema {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("db migrate failed: %v", err)
		}
	}

	// Read everything up front: a missing or unreadable input aborts
	// the stage before any write is attempted.
	users, err := record.ReadUsers(filepath.Join(*dataDir, record.UsersFile))
	if err != nil {
		log.Fatalf("read users failed: %v", err)
	}
	animes, err := record.ReadAnimes(filepath.Join(*dataDir, record.AnimesFile))
	if err != nil {
		log.Fatalf("read animes failed: %v", err)
	}
	links, err := record.ReadGenreLinks(filepath.Join(*dataDir, record.GenreLinksFile))
	if err != nil {
		log.Fatalf("read genre links failed: %v", err)
	}
	watchlists, err := record.ReadWatchlists(filepath.Join(*dataDir, record.WatchlistsFile))
	if err != nil {
		log.Fatalf("read watchlists failed: %v", err)
	}

	loader := load.New(db)
	failed := false

	// Parent entities first, then links. Each type reports on its own:
	// the loads are idempotent, so a failed type can be re-run later
	// without touching the ones that succeeded.
	if n, err := loader.LoadUsers(ctx, users); err != nil {
		log.Printf("[loader] users: %v", err)
		failed = true
	} else {
		log.Printf("[loader] users: %d inserted (%d total in file)", n, len(users))
	}
	if n, err := loader.LoadGenres(ctx, table); err != nil {
		log.Printf("[loader] genres: %v", err)
		failed = true
	} else {
		log.Printf("[loader] genres: %d inserted (%d in table)", n, table.Len())
	}
	if n, err := loader.LoadAnimes(ctx, animes); err != nil {
		log.Printf("[loader] animes: %v", err)
		failed = true
	} else {
		log.Printf("[loader] animes: %d inserted (%d total in file)", n, len(animes))
	}
	if n, err := loader.LoadGenreLinks(ctx, links); err != nil {
		log.Printf("[loader] anime_genres: %v", err)
		failed = true
	} else {
		log.Printf("[loader] anime_genres: %d inserted (%d total in file)", n, len(links))
	}
	if n, err := loader.LoadWatchlists(ctx, watchlists); err != nil {
		log.Printf("[loader] user_watchlists: %v", err)
		failed = true
	} else {
		log.Printf("[loader] user_watchlists: %d inserted (%d total in file)", n, len(watchlists))
	}

	if failed {
		log.Println("load finished with errors; fix and re-run (already-loaded rows are safe)")
		os.Exit(1)
	}
	log.Println("✅ load complete")
}
