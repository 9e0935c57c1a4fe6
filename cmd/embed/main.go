package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"spacebio-be/internal/bootstrap"
	"spacebio-be/internal/config"
	"spacebio-be/pkg/database"
)

// Batch embedding runner. Safe to interrupt and re-run: every run picks up
// only the articles that still lack an embedding.
func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Run the batch
	events, err := container.EmbeddingService.EmbedMissingArticles(ctx)
	if err != nil {
		log.Fatalf("Unable to start embedding batch: %v", err)
	}

	failures := 0
	for event := range events {
		if event.Err != nil {
			failures++
			log.Printf("[%d/%d] FAILED %s: %v", event.Index, event.Total, event.ArticleTitle, event.Err)
			continue
		}
		log.Printf("[%d/%d] embedded %s", event.Index, event.Total, event.ArticleTitle)
	}

	if err := ctx.Err(); err != nil {
		log.Printf("Interrupted; re-run to embed the remaining articles")
	}
	if failures > 0 {
		log.Printf("Done with %d failures; re-run to retry them", failures)
		os.Exit(1)
	}
	log.Println("Done: all articles embedded")
}
