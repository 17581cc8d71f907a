package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document store collections.
const (
	CollectionTags   = "etiquetas"
	CollectionColors = "colores"
	CollectionImages = "imagenes"
)

// Device classes of an image.
const (
	TipoMobile  = "mobile"
	TipoDesktop = "desktop"
)

// Label is a tag or color document. Nombre is stored trimmed and lowercased.
type Label struct {
	ID     primitive.ObjectID `json:"_id"    bson:"_id,omitempty"`
	Nombre string             `json:"nombre" bson:"nombre"`
}

// Image is the metadata of an uploaded picture.
type Image struct {
	ID        primitive.ObjectID `json:"_id"                bson:"_id,omitempty"`
	URL       string             `json:"url"                bson:"url"`
	Width     int                `json:"width"              bson:"width"`
	Height    int                `json:"height"             bson:"height"`
	Tipo      string             `json:"tipo"               bson:"tipo"`
	Filename  string             `json:"filename,omitempty" bson:"filename,omitempty"`
	Format    string             `json:"format,omitempty"   bson:"format,omitempty"`
	BlurHash  string             `json:"blurHash,omitempty" bson:"blurHash,omitempty"`
	CreatedAt time.Time          `json:"createdAt"          bson:"createdAt"`
}
