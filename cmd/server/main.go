package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/philliparaujo/everdell/internal/auth"
	"github.com/philliparaujo/everdell/internal/cache"
	"github.com/philliparaujo/everdell/internal/config"
	"github.com/philliparaujo/everdell/internal/database"
	"github.com/philliparaujo/everdell/internal/game"
	"github.com/philliparaujo/everdell/internal/server"
	"github.com/philliparaujo/everdell/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config load failed: %v", err)
	}
	cfg.ApplyLogLevel()
	auth.Init(cfg.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis backs both the live state store and the action historian.
	// Without it the service still runs, holding games in memory only.
	var st store.Store
	if err := cache.InitRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		logrus.Warnf("redis unavailable, using in-memory store: %v", err)
		st = store.NewMemoryStore()
	} else {
		st = store.NewRedisStore(cache.Rdb)
	}

	if cfg.DatabaseURL != "" {
		if err := database.Connect(ctx, cfg.DatabaseURL); err != nil {
			logrus.Warnf("postgres unavailable, snapshots disabled: %v", err)
		}
	}

	manager := game.NewManager(st)
	srv := server.New(cfg, manager)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Routes(),
	}

	go func() {
		logrus.Infof("listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("shutdown error: %v", err)
	}
	if database.DB != nil {
		database.DB.Close()
	}
	if cache.Rdb != nil {
		_ = cache.Rdb.Close()
	}
}
