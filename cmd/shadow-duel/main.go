package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"

	"shadow-duel/internal/api"
	"shadow-duel/internal/config"
	"shadow-duel/internal/constants"
	"shadow-duel/internal/logging"
	"shadow-duel/internal/service"
	"shadow-duel/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("load config", err, nil)
	}

	store, err := storage.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logging.Fatal("connect redis", err, logging.Fields{constants.LogFieldAddr: cfg.RedisAddr})
	}
	defer store.Close()

	repo := storage.NewKVRepository(store)
	svc := service.New(repo)

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		logging.Fatal("create scheduler", err, nil)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := svc.RunMaintenance(ctx); err != nil {
				logging.Error("shadow cleanup", err, nil)
			}
		}),
	)
	if err != nil {
		logging.Fatal("schedule maintenance", err, nil)
	}
	scheduler.Start()

	router := gin.Default()
	api.RegisterRoutes(router, api.NewBattleHandler(svc))

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
	}

	go func() {
		logging.Info("server listening", logging.Fields{constants.LogFieldAddr: cfg.ServerAddress})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server failed", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info("shutting down", nil)
	svc.Clock().Stop()
	if err := scheduler.Shutdown(); err != nil {
		logging.Error("scheduler shutdown", err, nil)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("server shutdown", err, nil)
	}
}
