package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zenith-gallery/core/internal/middleware"
	"github.com/zenith-gallery/core/internal/modules/auth/auth"
	"github.com/zenith-gallery/core/internal/modules/auth/user"
	"github.com/zenith-gallery/core/internal/modules/gallery/wallpaper"
	"github.com/zenith-gallery/core/internal/modules/media/image"
	"github.com/zenith-gallery/core/internal/modules/stats/popularity"
	"github.com/zenith-gallery/core/internal/modules/taxonomy/color"
	"github.com/zenith-gallery/core/internal/modules/taxonomy/tag"
	"github.com/zenith-gallery/core/internal/pkg/response"
	"go.mongodb.org/mongo-driver/mongo"
)

// Recommendations are random per request; downloads are binary.
var cacheSkipPaths = []string{
	"/fondos/recomendados",
	"/imagenes/original/*",
	"/imagenes/resized/*",
}

func (a *App) registerRoutes(mdb *mongo.Database, storage image.Storage) {
	r := a.router
	log := a.logger

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	if local, ok := storage.(*image.LocalStorage); ok {
		r.Static(image.UploadsRoute, local.Dir())
	}

	userSvc := user.NewService(a.db, log)
	authMW := middleware.Auth()
	adminMW := middleware.AdminOnly(userSvc, log)

	tags := tag.NewStore(mdb)
	colors := color.NewStore(mdb)
	imageSvc := image.NewService(mdb, storage, a.cfg.Storage.MaxPixels, log)
	repo := wallpaper.NewRepository(a.db)

	root := r.Group("")
	auth.NewHandler(auth.NewService(a.db, a.cfg.JWTTTL(), log), log).RegisterRoutes(root)
	user.NewHandler(userSvc, imageSvc, log, a.cfg.MaxUploadBytes()).RegisterRoutes(root, authMW)

	catalog := r.Group("",
		middleware.OptionalAuth(),
		a.rateLimit(),
		a.cache.Handler(),
		a.cache.PurgeOnWrite(),
	)
	wallpaper.NewHandler(wallpaper.NewService(repo, tags, colors, imageSvc, log), log).RegisterRoutes(catalog, adminMW)
	popularity.NewHandler(popularity.NewService(repo, tags, colors, log), log).RegisterRoutes(catalog)
	tag.NewHandler(tags, log).RegisterRoutes(catalog, adminMW)
	color.NewHandler(colors, log).RegisterRoutes(catalog, adminMW)
	image.NewHandler(imageSvc, log, a.cfg.MaxUploadBytes()).RegisterRoutes(catalog, adminMW)
}

func (a *App) rateLimit() gin.HandlerFunc {
	if !a.cfg.RateLimit.Enable {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(a.redis.Raw(), a.cfg.RateLimit.RequestsPerSecond, a.logger)
}
