package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"fridgechef/internal/api"
	"fridgechef/internal/auth"
	"fridgechef/internal/config"
	"fridgechef/internal/kitchen"
	"fridgechef/internal/logging"
	"fridgechef/internal/platform/provider"
	"fridgechef/internal/recipe"
	"fridgechef/internal/store"
	"fridgechef/internal/user"
	"fridgechef/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("recipe service failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(true); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	users, recipes, closeStore, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	model, closer, err := provider.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	router := api.NewRecipeRouter(api.RecipeServices{
		Auth:      auth.NewService(users, tokens),
		Book:      recipe.NewBook(recipes),
		Assistant: kitchen.NewAssistant(model, cfg.LLM.MaxTokens),
	}, api.RouterOptions{
		Logger:         logger,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		UploadMaxBytes: cfg.HTTP.UploadMaxBytes,
		Static:         web.Static(cfg.HTTP.StaticDir, web.Recipe()),
	})

	logger.Info("recipe service starting",
		slog.String("provider", cfg.LLM.Provider),
		slog.String("database", cfg.Database.Driver),
	)
	return api.Serve(ctx, cfg.Addr(), router, logger)
}

func openStores(ctx context.Context, cfg *config.Config) (user.Store, recipe.Store, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		return user.NewMemoryStore(), recipe.NewMemoryStore(), func() {}, nil
	}

	db, err := store.Open(ctx, cfg.Database.URL, cfg.Database.MaxOpenConns)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "open database")
	}
	return user.NewPostgresStore(db), recipe.NewPostgresStore(db), func() { _ = db.Close() }, nil
}
