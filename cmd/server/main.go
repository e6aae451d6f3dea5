// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/cameo-gg/cameo/internal/archive"
	"github.com/cameo-gg/cameo/internal/auth"
	"github.com/cameo-gg/cameo/internal/config"
	"github.com/cameo-gg/cameo/internal/handlers"
	"github.com/cameo-gg/cameo/internal/historian"
	"github.com/cameo-gg/cameo/internal/middleware"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Parse()
	if err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warnf("unknown log level %q, keeping default", cfg.LogLevel)
	}

	if err := auth.Init(cfg.TokenExpire); err != nil {
		logger.Fatalf("auth init failed: %v", err)
	}

	gs := handlers.NewGameServer(logger)

	if cfg.RedisAddr != "" {
		h, err := historian.Connect(cfg.RedisAddr, cfg.RedisDB, cfg.HistorianQueue, logger)
		if err != nil {
			logger.Fatalf("historian: %v", err)
		}
		defer h.Close()
		gs.Historian = h
		logger.Infof("Action historian enabled (queue %s)", cfg.HistorianQueue)
	}

	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		a, err := archive.Connect(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			cancel()
			logger.Fatalf("archive: %v", err)
		}
		if err := a.EnsureSchema(ctx); err != nil {
			cancel()
			logger.Fatalf("archive schema: %v", err)
		}
		cancel()
		defer a.Close()
		gs.Archive = a
		logger.Info("Result archive enabled")
	}

	logReq := middleware.LogMiddleware(logger)

	mux := http.NewServeMux()
	mux.Handle("/game/start", logReq(handlers.StartGameHandler(gs)))
	mux.Handle("/game/connect", logReq(handlers.ConnectGameHandler(gs)))
	mux.Handle("/game/ws/", logReq(handlers.GameWSHandler(logger, gs)))

	logger.Infof("Running on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}
