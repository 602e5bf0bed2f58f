package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"wardrobe/internal/auth"
	"wardrobe/internal/config"
	"wardrobe/internal/db"
	httpx "wardrobe/internal/http"
	"wardrobe/internal/jobs"
	"wardrobe/internal/logger"
	"wardrobe/internal/quality"
)

func main() {
	cfg, _ := config.Load()

	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("db connect", zap.Error(err))
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		zl.Fatal("db migrate", zap.Error(err))
	}

	jwtSvc := auth.NewJWT(cfg.JWTSecret)
	r := httpx.NewRouter(cfg, gdb, jwtSvc, zl)

	store := &quality.GormStore{DB: gdb}
	engine := quality.NewEngine(store, zl)

	jobsRepo := &jobs.Repo{DB: gdb}
	worker := &jobs.Worker{ID: "worker-1", Repo: jobsRepo, Engine: engine, Store: store, Log: zl}
	scheduler := &jobs.Scheduler{Repo: jobsRepo, Store: store, Log: zl}

	ctx, cancel := context.WithCancel(context.Background())
	go worker.Run(ctx)
	go scheduler.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zl.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("serve", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
