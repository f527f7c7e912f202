package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"homeventure/internal/adapters/gemini"
	server "homeventure/internal/adapters/http_server"
	"homeventure/internal/adapters/nominatim"
	"homeventure/internal/adapters/observability"
	redisad "homeventure/internal/adapters/redis"
	"homeventure/internal/adapters/serper"
	"homeventure/internal/app"
	"homeventure/internal/domain"
	"homeventure/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// record store
	store := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := store.Ping(pingCtx); err != nil {
		// Keep serving: the store may come back, and every dependent
		// endpoint reports "storage unavailable" until it does.
		log.Warn().Err(err).Msg("record store not reachable at startup")
	} else {
		log.Info().Msg("record store ok")
	}
	cancel()

	// providers; search and model are optional
	geo := nominatim.New(cfg.NominatimBase, cfg.ProviderTimeout, cfg.NominatimRPS)

	var search domain.Searcher
	if cfg.SerperKey != "" {
		cl, err := serper.New(cfg.SerperBase, cfg.SerperKey, cfg.ProviderTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("serper client init failed")
		}
		search = cl
	}
	var llm domain.Extractor
	if cfg.GeminiKey != "" {
		cl, err := gemini.New(cfg.GeminiBase, cfg.GeminiKey, cfg.ProviderTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("gemini client init failed")
		}
		llm = cl
	}

	// services
	statuses := app.NewStatusService(store)
	props := app.NewPropertyService(store)
	board := app.NewBoardService(props, statuses)
	enrich := app.NewEnrichService(search, llm)
	suggest := app.NewSuggestService(geo, search, llm)

	// http
	srv := server.New(cfg.CORSOrigins)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Statuses: statuses,
		Props:    props,
		Board:    board,
		Enrich:   enrich,
		Suggest:  suggest,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
