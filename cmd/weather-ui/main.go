package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/i474232898/clima/internal/api/http"
	"github.com/i474232898/clima/internal/config"
	"github.com/i474232898/clima/internal/history"
	"github.com/i474232898/clima/internal/scheduler"
	"github.com/i474232898/clima/internal/viewmodel"
	"github.com/i474232898/clima/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.LoadUI()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound calls to the provider and the recorder.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewOpenWeatherProvider(httpClient, providers.OpenWeatherConfig{
		APIKey:  cfg.OpenWeatherAPIKey,
		BaseURL: cfg.OpenWeatherURL,
		Lang:    cfg.Lang,
		Breaker: cfg.Breaker,
	})
	recorder := history.NewClient(httpClient, cfg.RecorderURL)

	vm := viewmodel.New(provider, recorder, cfg.DefaultCity,
		viewmodel.WithFetchTimeout(cfg.HTTPTimeout),
		viewmodel.WithRecordTimeout(cfg.HTTPTimeout),
	)
	vm.Start()

	// Optional periodic refresh of the selected city.
	sched := scheduler.New(cfg.RefreshInterval, vm)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}

	app := httpapi.NewApp("weather-ui")
	httpapi.RegisterUIRoutes(app, vm, cfg.NavCities, cfg.IconDir)

	go func() {
		log.Printf("INFO: weather ui listening on http://localhost:%s", cfg.Port)
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
	sched.Stop()
	if err := vm.Close(shutdownCtx); err != nil {
		log.Printf("error waiting for pending lookups: %v", err)
	}
}
