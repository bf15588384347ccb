package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mhizterpaul/cartlink/internal/api"
	"github.com/mhizterpaul/cartlink/internal/infrastructure/config"
	"github.com/mhizterpaul/cartlink/internal/infrastructure/httpclient"
	"github.com/mhizterpaul/cartlink/internal/infrastructure/logger"
	"github.com/mhizterpaul/cartlink/internal/infrastructure/telemetry"
	"github.com/mhizterpaul/cartlink/internal/infrastructure/tokenstore"
	"github.com/mhizterpaul/cartlink/internal/store"
	"go.uber.org/zap"
)

// app is everything one command invocation needs, built once from config.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	tracer  *telemetry.TracerProvider
	metrics *telemetry.Metrics
	kv      tokenstore.Store
	tokens  *tokenstore.Tokens
	client  *httpclient.Client
	api     *api.API
	store   *store.Store
}

func newApp(ctx context.Context, cfg *config.Config, verbose bool) (*app, error) {
	logCfg := logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	if verbose {
		logCfg.Level = "debug"
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &app{cfg: cfg, log: log}

	a.tracer, err = telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return nil, err
	}

	a.metrics = telemetry.NewMetrics(cfg.App.Name, log)
	if cfg.Metrics.Enabled {
		addr, err := a.metrics.Serve(cfg.Metrics.ListenAddr, cfg.Metrics.Path)
		if err != nil {
			a.close(ctx)
			return nil, err
		}
		log.Debug("Serving metrics", zap.String("addr", addr), zap.String("path", cfg.Metrics.Path))
	}

	a.kv, err = openTokenStore(ctx, cfg)
	if err != nil {
		a.close(ctx)
		return nil, err
	}
	a.tokens = tokenstore.NewTokens(a.kv, log)

	a.client, err = httpclient.New(httpclient.Config{
		BaseURL:         cfg.API.BaseURL,
		UserAgent:       cfg.API.UserAgent,
		WithCredentials: cfg.API.WithCredentials,
	},
		httpclient.WithCredentialProvider(a.tokens),
		httpclient.WithObserver(a.metrics),
		httpclient.WithLogger(log),
	)
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("creating http client: %w", err)
	}

	a.api = api.New(a.client, log)
	a.store = store.New(ctx, a.api, a.tokens,
		store.WithLogger(log),
		store.WithRecorder(a.metrics),
	)

	log.Debug("Client ready",
		zap.String("base_url", a.client.BaseURL()),
		zap.String("token_store", cfg.TokenStore.Driver),
	)
	return a, nil
}

func openTokenStore(ctx context.Context, cfg *config.Config) (tokenstore.Store, error) {
	switch cfg.TokenStore.Driver {
	case config.DriverMemory:
		return tokenstore.NewMemoryStore(), nil
	case config.DriverRedis:
		return tokenstore.NewRedisStore(ctx, tokenstore.RedisConfig{
			Addr:      cfg.Redis.Addr(),
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.TokenStore.KeyPrefix,
		})
	default:
		return tokenstore.NewFileStore(cfg.TokenStore.Path)
	}
}

// close releases whatever newApp managed to build. It is safe on a partial app.
func (a *app) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if a.client != nil {
		a.client.CloseIdleConnections()
	}
	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			a.log.Warn("Error closing token store", zap.Error(err))
		}
	}
	if a.metrics != nil {
		if err := a.metrics.Stop(ctx); err != nil {
			a.log.Warn("Error stopping metrics endpoint", zap.Error(err))
		}
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Warn("Error shutting down tracer provider", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}
