// Seed writes a default "active" status for every catalog property that has
// none yet, so a fresh store starts with the whole knock list visible.
package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"homeventure/internal/adapters/observability"
	redisad "homeventure/internal/adapters/redis"
	"homeventure/internal/catalog"
	"homeventure/internal/domain"
	"homeventure/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Int("catalog", catalog.Len()).Msg("seeder starting")

	store := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := store.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("record store not reachable")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	seeded := 0
	for _, p := range catalog.All() {
		id := domain.CatalogID(p.ID)

		var existing domain.PropertyStatus
		ok, err := store.Get(ctx, id.StatusKey(), &existing)
		if err != nil {
			log.Fatal().Int64("id", p.ID).Err(err).Msg("status read failed")
		}
		if ok {
			continue // never overwrite a real knock status
		}

		st := domain.PropertyStatus{Status: domain.StatusActive, Notes: p.Notes, UpdatedAt: now}
		if err := store.Put(ctx, id.StatusKey(), st); err != nil {
			log.Fatal().Int64("id", p.ID).Err(err).Msg("status write failed")
		}
		seeded++
	}

	log.Info().Int("seeded", seeded).Msg("seeding completed")
}
