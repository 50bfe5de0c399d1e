package app

import (
	"context"
	"time"

	"asset_circulation_engine/config"
	"asset_circulation_engine/db"
	"asset_circulation_engine/logger"
	"asset_circulation_engine/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Aliases so handlers can stay terse.
type Ctx = gin.Context
type H = gin.H

// App aggregates the process-wide dependencies.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Repo   *db.Repo
	Log    *zap.Logger
	Config *config.Config

	sessions *session.Store
}

func (a *App) Sessions() *session.Store { return a.sessions }

func MustNew() *App {
	log := logger.Must(logger.New())

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}

	conn, err := db.Connect(cfg.DatabaseDSN())
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	r := gin.Default()
	useCORS(r, cfg.WebOrigin)

	a := &App{
		Router:   r,
		DB:       conn,
		RDB:      rdb,
		Repo:     db.NewRepo(conn),
		Log:      log,
		Config:   cfg,
		sessions: session.NewStore(rdb, cfg.SessionTTL),
	}
	BootstrapFirstAdmin(context.Background(), a)
	return a
}

func (a *App) Close() {
	_ = a.RDB.Close()
	_ = a.Log.Sync()
}
