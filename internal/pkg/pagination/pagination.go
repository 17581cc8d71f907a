// Package pagination parses limit/offset windows from query strings.
package pagination

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zenith-gallery/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Query is a result window. Limit 0 means unlimited.
type Query struct {
	Limit  int
	Offset int
}

// FromContext reads ?limit and ?offset. Absent or empty values default to 0.
func FromContext(c *gin.Context) (Query, error) {
	limit, err := parseNonNegative("limit", c.Query("limit"))
	if err != nil {
		return Query{}, err
	}
	offset, err := parseNonNegative("offset", c.Query("offset"))
	if err != nil {
		return Query{}, err
	}
	return Query{Limit: limit, Offset: offset}, nil
}

// Validate rejects negative bounds.
func (q Query) Validate() error {
	if q.Limit < 0 {
		return apperr.Validation("limit no puede ser negativo")
	}
	if q.Offset < 0 {
		return apperr.Validation("offset no puede ser negativo")
	}
	return nil
}

// Apply adds LIMIT/OFFSET to a GORM query, skipping zero values.
func (q Query) Apply(db *gorm.DB) *gorm.DB {
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}
	return db
}

func parseNonNegative(name, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validationf("%s debe ser un número entero", name)
	}
	if v < 0 {
		return 0, apperr.Validationf("%s no puede ser negativo", name)
	}
	return v, nil
}
