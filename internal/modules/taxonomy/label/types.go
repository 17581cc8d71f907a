package label

import "github.com/zenith-gallery/core/internal/models"

// Kind names a label collection and the messages reported for it.
type Kind struct {
	Collection      string
	Route           string
	notFoundFormat  string
	duplicateFormat string
	deletedMessage  string
}

var (
	Tags = Kind{
		Collection:      models.CollectionTags,
		Route:           "/etiquetas",
		notFoundFormat:  "Etiqueta con ID %s no encontrada",
		duplicateFormat: "La etiqueta %q ya existe",
		deletedMessage:  "Etiqueta eliminada",
	}
	Colors = Kind{
		Collection:      models.CollectionColors,
		Route:           "/colores",
		notFoundFormat:  "Color con ID %s no encontrado",
		duplicateFormat: "El color %q ya existe",
		deletedMessage:  "Color eliminado",
	}
)

type CreateLabelDTO struct {
	Nombre string `json:"nombre" binding:"required"`
}

type UpdateLabelDTO struct {
	Nombre *string `json:"nombre"`
}
