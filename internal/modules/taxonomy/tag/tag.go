// Package tag exposes the wallpaper tag collection (etiquetas).
package tag

import (
	"github.com/zenith-gallery/core/internal/modules/taxonomy/label"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func NewStore(db *mongo.Database) *label.Store {
	return label.NewStore(db, label.Tags)
}

func NewHandler(store *label.Store, log *zap.Logger) *label.Handler {
	return label.NewHandler(store, log.Named("etiquetas"))
}
