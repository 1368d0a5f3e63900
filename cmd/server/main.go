package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chefcomanda/internal/config"
	"chefcomanda/internal/infra"
	"chefcomanda/internal/realtime"
	"chefcomanda/internal/repository"
	"chefcomanda/internal/router"
	"chefcomanda/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Realtime hub — pushes change events to connected salão/cozinha screens
	hub := realtime.NewHub()
	go hub.Run()

	// Worker pool for async tasks (NFC-e emission, recibo email, auditoria).
	// Worker handlers are wired here (composition root) so that the pool
	// has full access to all infrastructure dependencies.
	nfceClient := infra.NewNFCeClient(cfg.NFCeSidecarURL)
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	vendaRepo := repository.NewVendaRepository(db)
	logRepo := repository.NewLogRepository(db)

	handlers := worker.Handlers{
		NFCe:      worker.NewNFCeWorker(nfceClient, vendaRepo, dispatcher, cfg.PDFStoragePath, cfg.CNPJEmissor, cfg.NomeRestaurante),
		Email:     worker.NewEmailWorker(mailer),
		Auditoria: worker.NewAuditoriaWorker(logRepo),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	// Retry cron re-attempts pending emissions behind a circuit breaker so a
	// sidecar outage does not hammer the SEFAZ endpoint.
	nfceCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		VendaRepo:   vendaRepo,
		NFCeClient:  nfceClient,
		CB:          nfceCB,
		RDB:         rdb,
		CNPJEmissor: cfg.CNPJEmissor,
	})

	r := router.New(cfg, db, rdb, hub, dispatcher, nfceCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("ChefComanda backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
