package app

import (
	"context"
	"fmt"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/database"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/infrastructure/cache"
	"talent-match/internal/pkg/logger"
	"talent-match/internal/ws"

	"go.uber.org/zap"
)

type Container struct {
	Config   config.Config
	Logger   *zap.Logger
	DB       database.DB
	Cache    *cache.Redis
	Hub      *ws.Hub
	Notifier *ws.Notifier
}

func NewContainer(cfg config.Config) (*Container, error) {
	log, err := logger.New(cfg.App.Environment)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	redisCache := cache.NewRedis(cfg.Redis, log)

	hub := ws.NewHub(log)
	go hub.Run()

	return &Container{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Cache:    redisCache,
		Hub:      hub,
		Notifier: ws.NewNotifier(hub),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
