package wallpaper

import (
	"math"

	"github.com/zenith-gallery/core/internal/pkg/apperr"
	"github.com/zenith-gallery/core/internal/pkg/pagination"
)

// RecommendedLimit caps the recommendation set.
const RecommendedLimit = 8

type CreateWallpaperDTO struct {
	Titulo      *string  `json:"titulo"      binding:"omitempty,min=3"`
	Descripcion *string  `json:"descripcion" binding:"omitempty,min=3"`
	Colores     []string `json:"colores"`
	Etiquetas   []string `json:"etiquetas"`
	Imagen      *string  `json:"imagen"      binding:"required,min=1"`
}

type UpdateWallpaperDTO struct {
	Titulo      *string   `json:"titulo"      binding:"omitempty,min=3"`
	Descripcion *string   `json:"descripcion" binding:"omitempty,min=3"`
	Colores     *[]string `json:"colores"`
	Etiquetas   *[]string `json:"etiquetas"`
	Imagen      *string   `json:"imagen"      binding:"omitempty,min=1"`
}

type incrementBody struct {
	Incremento any `json:"incremento"`
}

// ListQuery is a parsed listing request. Etiquetas and Colores hold names.
type ListQuery struct {
	pagination.Query
	Search    string
	Etiquetas []string
	Colores   []string
	Tipo      string
}

// Filter is a listing predicate with every name already resolved to ids.
// A nil id set applies no condition.
type Filter struct {
	Search         string
	TagSearchIDs   []string
	ColorSearchIDs []string
	TagIDs         []string
	ColorIDs       []string
	ImageIDs       []string
}

// ParseIncrement accepts a JSON number that is a positive integer.
func ParseIncrement(raw any) (int, error) {
	invalid := apperr.Validation("El incremento debe ser un número válido.")
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return 0, invalid
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f <= 0 || f > math.MaxInt32 {
		return 0, invalid
	}
	return int(f), nil
}
