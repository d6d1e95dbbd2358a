package main

// Run one posting status sweep and exit:
//   go run ./cmd/sweep

import (
	"context"
	"log"
	"os"
	"time"

	"recruit-backend/internal/bootstrap"
	"recruit-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()
	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Printf("bootstrap error: %v", err)
		os.Exit(1)
	}
	defer app.Close()

	updated, err := app.PostingsService.Sweep(context.Background(), time.Now().UTC())
	if err != nil {
		log.Printf("sweep failed after %d updates: %v", updated, err)
		os.Exit(1)
	}
	log.Printf("sweep complete: %d postings updated", updated)
}
