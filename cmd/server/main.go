package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotelier/internal/config"
	"hotelier/internal/infra"
	"hotelier/internal/repository"
	"hotelier/internal/router"
	"hotelier/internal/service"
	"hotelier/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger: pretty in dev, JSON in prod
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Settings: load once at startup, then follow broadcasts from other
	// instances for the rest of the process lifetime.
	settingRepo := repository.NewSettingRepository(db)
	settings := service.NewSettingsService(settingRepo, rdb)
	if err := settings.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load settings")
	}
	go settings.WatchChanges(ctx)

	// Async receipt pipeline: SMTP behind a circuit breaker, consumed by
	// the Redis-backed worker pool.
	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, worker.Handlers{
		Receipts: worker.NewReceiptWorker(mailer, smtpCB),
	})

	// Background sweep that closes bookings past their stay window.
	bookingRepo := repository.NewBookingRepository(db)
	roomSvc := service.NewRoomService(repository.NewRoomRepository(db), infra.NewCache(rdb))
	sweeper := worker.NewCheckoutSweeper(bookingRepo, roomSvc,
		time.Duration(cfg.CheckoutSweepMinutes)*time.Minute)
	sweeper.Start(ctx)

	r := router.New(router.Deps{
		Config:   cfg,
		DB:       db,
		RDB:      rdb,
		SMTPCB:   smtpCB,
		Settings: settings,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("hotelier backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
