package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"petlink-api/internal/adapters/storage/mongodb"
	"petlink-api/internal/config"
	"petlink-api/internal/platform/logger"
	"petlink-api/internal/router"
	"petlink-api/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)

	ctx := context.Background()

	// MONGO_URI vacío => repos in-memory (modo dev)
	var db *mongo.Database
	var client *mongo.Client
	if cfg.Mongo.URI != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		client, err = mongodb.Open(connectCtx, cfg.Mongo.URI)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("no se pudo conectar a mongodb")
		}
		db = client.Database(cfg.Mongo.Database)

		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("no se pudieron crear los índices")
		}
		if err := seed.Roles(ctx, mongodb.NewRolesRepo(db), log); err != nil {
			log.Fatal().Err(err).Msg("no se pudieron sembrar los roles")
		}
	} else {
		log.Warn().Msg("MONGO_URI vacío, usando almacenamiento en memoria")
	}

	handler := router.NewRouter(router.Options{
		Logger: log,
		DB:     db,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("servidor iniciado")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("fallo del servidor http")
		}
	}()

	waitForShutdown(log, srv, client)
}

func waitForShutdown(log zerolog.Logger, srv *http.Server, client *mongo.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado ordenado fallido")
	}

	if client != nil {
		if err := client.Disconnect(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error al cerrar la conexión con mongodb")
		}
	}

	log.Info().Msg("servidor detenido")
}
