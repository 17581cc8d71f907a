package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zenith-gallery/core/internal/config"
	"github.com/zenith-gallery/core/internal/database"
	"github.com/zenith-gallery/core/internal/middleware"
	"github.com/zenith-gallery/core/internal/modules/media/image"
	pkgredis "github.com/zenith-gallery/core/internal/pkg/redis"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	mongo  *mongo.Client
	redis  *pkgredis.Client
	cache  *middleware.ResponseCache
	logger *zap.Logger
}

// New initializes the application: config → Postgres → Mongo → Redis → storage → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	applyRuntimeSettings(cfg, logger)

	app := &App{cfg: cfg, logger: logger}
	var err error
	defer func() {
		if err != nil {
			_ = app.Shutdown(context.Background())
		}
	}()

	app.db, err = database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var mdb *mongo.Database
	app.mongo, mdb, err = database.ConnectMongo(context.Background(), cfg.MongoURI, cfg.Mongo.Database)
	if err != nil {
		return nil, fmt.Errorf("mongo: %w", err)
	}

	if cfg.Redis.Enable {
		app.redis, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	} else {
		logger.Info("redis disabled, rate limit and response cache are off")
	}

	var storage image.Storage
	storage, err = image.NewStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	app.router = gin.New()
	app.router.HandleMethodNotAllowed = true
	app.router.Use(gin.Recovery())
	app.router.Use(middleware.Logger(logger))
	app.router.Use(newCORS(cfg))

	app.cache = middleware.NewResponseCache(app.redis.Raw(), middleware.HTTPCacheOptions{
		TTL:       cfg.CacheTTL(),
		Disable:   !cfg.HTTPCache.Enable,
		SkipPaths: cacheSkipPaths,
	}, logger)

	app.registerRoutes(mdb, storage)
	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown closes the Redis, Mongo and Postgres pools.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("redis: %w", err))
	}
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongo: %w", err))
		}
	}
	if err := database.Close(a.db); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}
	return errors.Join(errs...)
}
