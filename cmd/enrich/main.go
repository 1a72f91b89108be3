package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"
	"time"

	"animehub/internal/config"
	"animehub/internal/load"
	"animehub/internal/record"
	"animehub/pkg/database"
)

func main() {
	var (
		detailsIn  = flag.String("details", "", "anime details CSV (default <data-dir>/anime_details.csv)")
		reviewsIn  = flag.String("reviews", "", "reviews CSV (default <data-dir>/reviews.csv)")
		initSchema = flag.Bool("init-schema", false, "apply docs/schema.sql before loading")
	)
	flag.Parse()

	cfg := config.Load()
	if *detailsIn == "" {
		*detailsIn = filepath.Join(cfg.DataDir, "anime_details.csv")
	}
	if *reviewsIn == "" {
		*reviewsIn = filepath.Join(cfg.DataDir, "reviews.csv")
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

	details, err := record.ReadDetails(*detailsIn)
	if err != nil {
		log.Fatalf("read details failed: %v", err)
	}
	reviews, err := record.ReadReviews(*reviewsIn)
	if err != nil {
		log.Fatalf("read reviews failed: %v", err)
	}

	loader := load.New(db)

	// Enrichment is all-or-nothing: one bad update rolls the whole
	// batch back, and already-committed append-only rows stay put.
	if err := loader.EnrichDetails(ctx, details); err != nil {
		log.Fatalf("enrichment batch rolled back: %v", err)
	}
	log.Printf("[enrich] details applied to %d animes", len(details))

	n, err := loader.ImportReviews(ctx, reviews)
	if err != nil {
		log.Fatalf("import reviews failed: %v", err)
	}
	log.Printf("[enrich] reviews: %d inserted (%d total in file)", n, len(reviews))

	log.Println("✅ enrichment complete")
}
