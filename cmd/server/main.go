package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"localesite/internal/audit"
	"localesite/internal/config"
	"localesite/internal/contact"
	"localesite/internal/database"
	"localesite/internal/email"
	"localesite/internal/i18n"
	"localesite/internal/logging"
	redisx "localesite/internal/redis"
	"localesite/internal/server"
)

const switchLogMaxLen = 1000

func main() {
	config.LoadDotEnvUp(6)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, logCloser, err := logging.New(logging.Options{
		Local:      cfg.Local(),
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	if err != nil {
		log.Fatalf("log setup error: %v", err)
	}
	defer logCloser.Close()
	defer func() { _ = logger.Sync() }()

	locales, err := i18n.NewLocales(cfg.Locales.Supported, cfg.Locales.Default)
	if err != nil {
		logger.Fatal("locale setup", zap.Error(err))
	}

	var bundleFS fs.FS = i18n.EmbeddedBundles()
	if cfg.Locales.Dir != "" {
		bundleFS = os.DirFS(cfg.Locales.Dir)
	}
	bundles := &i18n.Loader{FS: bundleFS, Logger: logger}

	deps := server.Deps{
		Mailer:       email.NewSender(cfg.Email),
		HealthChecks: map[string]func(context.Context) error{},
	}

	if cfg.RedisURL != "" {
		redisClient, err := redisx.New(cfg.RedisURL)
		if err != nil {
			logger.Fatal("redis error", zap.Error(err))
		}
		defer redisClient.Close()

		cache := &redisx.BundleCache{Redis: redisClient, TTL: cfg.Locales.BundleCacheTTL}
		if err := cache.Invalidate(context.Background(), locales.Supported()...); err != nil {
			logger.Warn("bundle cache invalidation failed", zap.Error(err))
		}
		bundles.Cache = cache

		deps.Switches = &audit.SwitchLog{Redis: redisClient, MaxLen: switchLogMaxLen}
		deps.RateLimiter = &contact.RateLimiter{Redis: redisClient}
		deps.HealthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	} else {
		logger.Info("REDIS_URL not set; bundle cache, switch stats and rate limiting disabled")
	}

	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("database error", zap.Error(err))
		}
		defer db.Close()

		repo := contact.NewRepository(db)
		deps.Contacts = repo
		deps.HealthChecks["database"] = repo.Ping
	} else {
		logger.Info("DATABASE_URL not set; contact form disabled")
	}

	app, err := server.NewServer(cfg, locales, bundles, logger, deps)
	if err != nil {
		logger.Fatal("server init error", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.Strings("locales", locales.Supported()),
			zap.String("default_locale", locales.Default()),
			zap.String("negotiation", cfg.Locales.Negotiation),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
