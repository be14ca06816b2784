package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant/internal/config"
	"restaurant/internal/database"
	"restaurant/internal/events"
	"restaurant/internal/handler"
	"restaurant/internal/service"
	"restaurant/internal/session"
	"restaurant/internal/storage"
	"restaurant/internal/worker"
)

func main() {
	cfg := config.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Client storage
	var store storage.Store = storage.NewMemoryStore()
	if cfg.DatabaseURI != "" {
		db, err := database.NewDB(ctx, cfg.DatabaseURI)
		if err != nil {
			slog.Error("failed to connect to DB", "error", err)
			os.Exit(1)
		}
		defer database.CloseDB(db)

		if err := database.InitSchema(db); err != nil {
			slog.Error("failed to init DB schema", "error", err)
			os.Exit(1)
		}
		store = storage.NewPostgresStore(db)
		slog.Info("client storage in postgres")
	}

	// Order events
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPub, err := events.DialAMQP(cfg.AMQPURL)
		if err != nil {
			slog.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer amqpPub.Close()
		publisher = amqpPub
		slog.Info("publishing order events", "exchange", events.Exchange)
	}

	creds, err := service.DemoCredentials()
	if err != nil {
		slog.Error("failed to build credential table", "error", err)
		os.Exit(1)
	}

	// Services
	menu := service.NewDemoMenu()
	orders := service.NewOrderBook(cfg.SimulatedLatency, publisher, slog.Default())
	orders.Seed()
	sessions := session.NewRegistry(store, service.AuthOptions{
		Credentials: creds,
		Secret:      cfg.JWTSecret,
		Latency:     cfg.SimulatedLatency,
		Logger:      slog.Default(),
	}, slog.Default())

	// Worker
	sessionWorker := worker.NewSessionWorker(sessions, cfg.SessionTTL)

	router := handler.NewRouter(handler.Deps{
		Menu:      menu,
		Orders:    orders,
		Sessions:  sessions,
		JWTSecret: cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go sessionWorker.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	cancel() // stop worker
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
