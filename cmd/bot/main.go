package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"dollhouse-lurker/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	InitLogger(cfg.LogLevel, cfg.LogFormat)

	app, err := NewApp(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		slog.Error("Failed to start application", "error", err)
		shutdown(app)
		os.Exit(1)
	}

	WaitForShutdown()
	shutdown(app)
}

func shutdown(app *App) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(ctx); err != nil {
		slog.Error("Application shutdown error", "error", err)
	}
}
