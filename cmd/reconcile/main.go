// Command main repairs drifted post counters from their authoritative
// sources. Run it periodically (cron) or after incidents.
package main

import (
	"context"
	"log"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/repository"
	"inkwell/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	cache.InitRedis(cfg.RedisURL)
	defer cache.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	svc := service.NewReconcileService(db, repository.NewEventRepository(db))
	adjustments, err := svc.Reconcile(ctx)
	if err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}

	if len(adjustments) == 0 {
		log.Println("All counters consistent")
		return
	}
	for _, adj := range adjustments {
		log.Printf("post %d: %s %d -> %d", adj.PostID, adj.Counter, adj.From, adj.To)
	}
	log.Printf("Repaired %d counters", len(adjustments))
}
