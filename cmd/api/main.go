// @title Pet Marketplace API
// @version 1.0
// @description Marketplace de adopción y venta de mascotas: cuentas con bearer token, publicación y catálogo de mascotas.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-marketplace/internal/adapters/auth/jwtauth"
	"pet-marketplace/internal/platform/config"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if cfg.SecretWasDrawn {
		log.Warn("JWT_SECRET not set; using a random secret, tokens die with the process", nil)
	}

	tokens, err := jwtauth.New(jwtauth.Config{Secret: cfg.JWTSecret, TTL: cfg.TokenTTL})
	if err != nil {
		return err
	}

	stores, err := router.OpenStores(cfg, log)
	if err != nil {
		return err
	}
	defer stores.Close()

	h, err := router.NewRouter(router.Options{
		Tokens:      tokens,
		Logger:      log,
		Stores:      stores,
		BcryptCost:  cfg.BcryptCost,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{"addr": cfg.Addr(), "store": string(cfg.Store), "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("gracefully shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
