// Package color exposes the wallpaper color collection (colores).
package color

import (
	"github.com/zenith-gallery/core/internal/modules/taxonomy/label"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func NewStore(db *mongo.Database) *label.Store {
	return label.NewStore(db, label.Colors)
}

func NewHandler(store *label.Store, log *zap.Logger) *label.Handler {
	return label.NewHandler(store, log.Named("colores"))
}
