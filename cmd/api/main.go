package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"virtual-pet-service/internal/adapters/auth/accounts"
	"virtual-pet-service/internal/platform/logger"
	"virtual-pet-service/internal/ports/auth"
	"virtual-pet-service/internal/router"
	"virtual-pet-service/internal/scheduler"
)

// @title virtual-pet-service API
// @version 1.0
// @description Simulador de mascotas virtuales: acciones de cuidado, decaimiento pasivo y bitácora.
// @BasePath /
func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	// Verifier solo si está configurado; si no, modo dev con X-Debug-User-ID.
	var verifier auth.AuthVerifier
	if baseURL := os.Getenv("AUTH_BASE_URL"); baseURL != "" {
		client, err := accounts.NewClient(accounts.Config{
			BaseURL: baseURL,
			APIKey:  os.Getenv("AUTH_API_KEY"),
		})
		if err != nil {
			log.Error("config de auth inválida", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		verifier = accounts.NewVerifier(client)
		log.Info("auth: verifier configurado", map[string]any{"base_url": baseURL})
	} else {
		log.Warn("auth: modo dev (X-Debug-User-ID)", nil)
	}

	rt, err := router.New(router.Options{
		AuthVerifier: verifier,
		Log:          log,
	})
	if err != nil {
		log.Error("no se pudo armar el router", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go rt.Hub.Run(ctx)

	interval := scheduler.DefaultInterval
	if v := os.Getenv("DECAY_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			interval = d
		} else {
			log.Warn("DECAY_INTERVAL inválido, usando default", map[string]any{"value": v})
		}
	}
	decay := scheduler.NewDecay(rt.Pets, interval, log)
	go decay.Start(ctx)

	srv := &http.Server{
		Addr:         addr,
		Handler:      rt.Handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
