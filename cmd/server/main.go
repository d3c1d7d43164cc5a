package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nhattm/gameshelf/internal/api"
	"github.com/nhattm/gameshelf/internal/config"
	"github.com/nhattm/gameshelf/internal/factory"
	"github.com/nhattm/gameshelf/internal/services/auth"
	mongostorage "github.com/nhattm/gameshelf/internal/storage/mongo"
	redisstorage "github.com/nhattm/gameshelf/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	factoryCfg := factory.Config{
		SigningKey: cfg.SigningKey,
		WorkFactor: cfg.WorkFactor,
		AuthConfig: auth.Config{
			AccessTokenTTL:  cfg.AccessTokenTTL(),
			RefreshTokenTTL: cfg.RefreshTokenTTL(),
		},
		Logger:      logger,
		StorageType: cfg.StorageType,
	}

	switch cfg.StorageType {
	case factory.StorageTypeMongo:
		if cfg.MongoURI == "" {
			logger.Error("MONGODB_URI required when STORAGE_TYPE=mongo")
			os.Exit(1)
		}
		mongoCfg := mongostorage.DefaultConfig()
		mongoCfg.URI = cfg.MongoURI
		mongoCfg.AppName = cfg.MongoAppName
		mongoCfg.Username = cfg.MongoUsername
		mongoCfg.Password = cfg.MongoPassword
		if cfg.MongoDatabase != "" {
			mongoCfg.Database = cfg.MongoDatabase
		}
		mongoCfg.UsersCollection = cfg.MongoUsersCollection
		mongoCfg.GamesCollection = cfg.MongoGamesCollection
		factoryCfg.MongoConfig = &mongoCfg
	case factory.StorageTypeRedis:
		if cfg.RedisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(context.Background(), factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Mode:           cfg.Mode,
		AllowedOrigins: cfg.AllowedOrigins,
		AuthService:    app.AuthService,
		TokenService:   app.TokenService,
		CatalogService: app.CatalogService,
		Hasher:         app.Hasher,
		Storage:        app.Storage,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("mode", cfg.Mode),
		slog.String("storage", cfg.StorageType),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
