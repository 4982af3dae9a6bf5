package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/config"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/infra"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/repository"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/router"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/service"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/worker"

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

	// Async receipt pipeline: payment → PDF → email.
	// Worker handlers are wired here (composition root) so the pool has full
	// access to all infrastructure dependencies.
	mailer := infra.NewMailer(cfg)
	mailCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	paymentRepo := repository.NewPaymentRepository(db)
	billRepo := repository.NewBillRepository(db)
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, worker.Handlers{
		Receipt: worker.NewReceiptWorker(paymentRepo, billRepo, dispatcher, rdb, cfg.PDFStoragePath),
		Email:   worker.NewEmailWorker(mailer, mailCB, rdb),
	})

	// Periodic ledger-vs-counter drift sweep
	worker.StartReconcileCron(ctx, worker.ReconcileCronConfig{
		Stock:    service.NewStockService(productRepo, movementRepo),
		Products: productRepo,
		Interval: time.Duration(cfg.ReconcileIntervalMinute) * time.Minute,
	})

	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("OneSalon finance service listening on :%d", cfg.Port)
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
