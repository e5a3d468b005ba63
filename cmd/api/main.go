package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/yuchenwang/wallet-api/internal/config"
	"github.com/yuchenwang/wallet-api/internal/database"
	walletHttp "github.com/yuchenwang/wallet-api/internal/http"
	txHandler "github.com/yuchenwang/wallet-api/internal/http/transaction"
	"github.com/yuchenwang/wallet-api/internal/ratelimit"
	"github.com/yuchenwang/wallet-api/internal/transaction"
	txStore "github.com/yuchenwang/wallet-api/internal/transaction/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	var limiter ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		limiter = ratelimit.NewSlidingWindow(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	} else {
		slog.Warn("REDIS_ADDR not set, rate limiting disabled")
	}

	transactionService := transaction.NewService(txStore.New(db))
	transactionH := txHandler.NewHandler(transactionService)

	router := walletHttp.New(transactionH, limiter, cfg.Auth.JWTSecret)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "addr", addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
