package main

import (
	"log/slog"
	"net/http"
	"os"

	"yokaiquest/internal/config"
	"yokaiquest/internal/content"
	"yokaiquest/internal/game"
	"yokaiquest/internal/save"
	"yokaiquest/internal/session"
	"yokaiquest/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	catalog, err := content.Load(cfg.ContentDir)
	if err != nil {
		logger.Error("load content", "dir", cfg.ContentDir, "error", err)
		os.Exit(1)
	}

	store, err := save.Open(cfg.SavePath)
	if err != nil {
		logger.Error("open save store", "path", cfg.SavePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	srv := web.NewServer(
		game.NewEngine(catalog, logger),
		session.NewMemoryStore[*game.State](),
		store,
		logger,
	)

	logger.Info("listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Routes()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
