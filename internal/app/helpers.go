package app

import (
	"os"

	"github.com/zenith-gallery/core/internal/config"
	jwtpkg "github.com/zenith-gallery/core/internal/pkg/jwt"
	"github.com/zenith-gallery/core/internal/pkg/nativelog"
	"go.uber.org/zap"
)

func applyRuntimeSettings(cfg *config.AppConfig, logger *zap.Logger) {
	_ = os.Setenv(nativelog.EnvLogDir, cfg.LogDir())

	if cfg.JWTSecret != "" {
		jwtpkg.SetSecret(cfg.JWTSecret)
	} else {
		logger.Warn("jwt_secret is empty, using built-in default secret")
	}
}
