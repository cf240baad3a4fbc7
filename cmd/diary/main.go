package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fridgechef/internal/api"
	"fridgechef/internal/config"
	"fridgechef/internal/diary"
	"fridgechef/internal/logging"
	"fridgechef/internal/platform/provider"
	"fridgechef/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("diary service failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.DefaultPort("3001")
	if err := cfg.Validate(false); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	model, closer, err := provider.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	router := api.NewDiaryRouter(diary.NewAnalyzer(model, diary.DefaultMaxTokens), api.RouterOptions{
		Logger:         logger,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		UploadMaxBytes: cfg.HTTP.UploadMaxBytes,
		Static:         web.Static(cfg.HTTP.StaticDir, web.Diary()),
	})

	logger.Info("diary service starting", slog.String("provider", cfg.LLM.Provider))
	return api.Serve(ctx, cfg.Addr(), router, logger)
}
