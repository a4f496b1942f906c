package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"minibank/internal/config"
	"minibank/internal/db"
	"minibank/internal/handlers"
	"minibank/internal/logger"
	"minibank/internal/services"
	"minibank/internal/store"
	"minibank/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("failed to load config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)

	repo, closeRepo, err := openRepository(cfg)
	if err != nil {
		log.Fatalw("failed to open storage", "storage", cfg.Storage, "err", err)
	}
	defer closeRepo()

	ctx := context.Background()
	if err := repo.SeedIfAbsent(ctx); err != nil {
		log.Fatalw("failed to seed demo data", "err", err)
	}

	hub := websocket.NewHub()
	sessions := services.NewSessionService(repo)
	ledger := services.NewLedgerService(repo, hub)
	exports := services.NewExportService(repo)

	handler := handlers.New(cfg, log, sessions, ledger, exports, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("minibank API listening", "addr", server.Addr, "storage", cfg.Storage)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server error", "err", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("shutdown error", "err", err)
	}
}

func openRepository(cfg config.Config) (store.Repository, func(), error) {
	if cfg.Storage == config.StorageSQLite {
		database, err := db.Connect(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		sqlStore := store.NewSQLStore(database)
		if err := sqlStore.Init(context.Background()); err != nil {
			database.Close()
			return nil, nil, err
		}
		return sqlStore, func() { database.Close() }, nil
	}
	jsonStore, err := store.NewJSONStore(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return jsonStore, func() {}, nil
}
