package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"client-service/internal/api"
	"client-service/internal/config"
	"client-service/internal/database"
	"client-service/internal/metrics"
	"client-service/internal/repository"
	"client-service/internal/service"
	"client-service/migrations"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Msgf("Unknown log level %q, using info", cfg.LogLevel)
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if cfg.DBAutoMigrate {
		if err := migrations.AutoMigrate(ctx, 3, migrations.DialectMySQL, db); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate tables")
		}
	}

	var keys service.KeyStore
	if cfg.RedisAddr != "" {
		rdb := config.NewRedisClient(cfg.RedisAddr)
		defer rdb.Close()
		keys = rdb
	}

	var events service.EventWriter
	if len(cfg.KafkaBrokers) > 0 {
		kafkaWriter := config.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaWriter.Close()
		events = kafkaWriter
	}

	userRepo := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepo)
	userHandler := api.NewUserHandler(userService)

	clientRepo := repository.NewClientRepository(db)
	clientService := service.NewClientService(clientRepo, keys, events)
	clientHandler := api.NewClientHandler(clientService)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewDBStatsCollector(db, cfg.DBName),
	)

	e := api.NewRouter(userHandler, clientHandler, metrics.New(reg))

	go func() {
		log.Info().Msgf("Server running on port %s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error shutting down server")
	}
}
