package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/middleware/cors"

	httpapi "github.com/i474232898/clima/internal/api/http"
	"github.com/i474232898/clima/internal/config"
	"github.com/i474232898/clima/internal/history"
	"github.com/i474232898/clima/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.LoadRecorder()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The store connection is opened once and shared by every request.
	openCtx, cancelOpen := context.WithTimeout(context.Background(), 10*time.Second)
	historyStore, err := store.Open(openCtx, store.Options{
		Driver:          cfg.StoreDriver,
		MongoURI:        cfg.MongoURI,
		MongoDatabase:   cfg.MongoDatabase,
		MongoCollection: cfg.MongoCollection,
		SQLDSN:          cfg.SQLDSN,
	})
	cancelOpen()
	if err != nil {
		log.Fatalf("failed to open %s history store: %v", cfg.StoreDriver, err)
	}
	log.Printf("INFO: connected to %s history store", cfg.StoreDriver)

	recorder := history.NewRecorder(historyStore)

	app := httpapi.NewApp("history-recorder")
	// The UI posts from another origin.
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.AllowOrigins}))

	// API routes.
	httpapi.RegisterRoutes(app, recorder, cfg.StoreTimeout)

	go func() {
		log.Printf("INFO: history recorder listening on http://localhost:%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
	if err := historyStore.Close(shutdownCtx); err != nil {
		log.Printf("error closing history store: %v", err)
	}
}
