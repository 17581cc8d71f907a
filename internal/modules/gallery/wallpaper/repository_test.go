package wallpaper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenith-gallery/core/internal/database"
	"github.com/zenith-gallery/core/internal/models"
	"github.com/zenith-gallery/core/internal/pkg/apperr"
	"github.com/zenith-gallery/core/internal/pkg/pagination"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(database.Dialector("host=localhost user=zenith dbname=zenith sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func listSQL(db *gorm.DB, f Filter, page pagination.Query) string {
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out []models.Wallpaper
		return listQuery(tx, f, page).Find(&out)
	})
}

func TestListQueryWithoutFilters(t *testing.T) {
	sql := listSQL(dryRunDB(t), Filter{}, pagination.Query{})

	assert.Contains(t, sql, `SELECT * FROM "fondos"`)
	assert.NotContains(t, sql, "WHERE")
	assert.Contains(t, sql, "ORDER BY fecha_publicacion DESC, id ASC")
	assert.NotContains(t, sql, "LIMIT")
	assert.NotContains(t, sql, "OFFSET")
}

func TestListQueryComposesOnePredicate(t *testing.T) {
	sql := listSQL(dryRunDB(t), Filter{
		Search:         "50%_off",
		TagSearchIDs:   []string{"t1", "t2"},
		ColorSearchIDs: []string{"c1"},
		TagIDs:         []string{"t9"},
		ColorIDs:       []string{"c9"},
		ImageIDs:       []string{"i1", "i2"},
	}, pagination.Query{Limit: 10, Offset: 5})

	assert.Contains(t, sql, `(titulo ILIKE '%50\%\_off%' OR descripcion ILIKE '%50\%\_off%'`)
	assert.Contains(t, sql, `OR etiquetas && '{"t1","t2"}'::text[]`)
	assert.Contains(t, sql, `OR colores && '{"c1"}'::text[])`)
	assert.Contains(t, sql, `AND etiquetas && '{"t9"}'::text[]`)
	assert.Contains(t, sql, `AND colores && '{"c9"}'::text[]`)
	assert.Contains(t, sql, `AND imagen IN ('i1','i2')`)
	assert.NotContains(t, sql, "UNION")
	assert.Contains(t, sql, "ORDER BY fecha_publicacion DESC, id ASC")
	assert.Contains(t, sql, "LIMIT 10")
	assert.Contains(t, sql, "OFFSET 5")
}

func TestListQuerySearchWithoutArrayMatches(t *testing.T) {
	sql := listSQL(dryRunDB(t), Filter{Search: "playa"}, pagination.Query{})

	assert.Contains(t, sql, `titulo ILIKE '%playa%' OR descripcion ILIKE '%playa%'`)
	assert.NotContains(t, sql, "&&")
}

func TestRandomQuery(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out []models.Wallpaper
		return randomQuery(tx, nil, RecommendedLimit).Find(&out)
	})
	assert.NotContains(t, sql, "WHERE")
	assert.Contains(t, sql, "ORDER BY RANDOM() LIMIT 8")

	sql = db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out []models.Wallpaper
		return randomQuery(tx, []string{"t1"}, RecommendedLimit).Find(&out)
	})
	assert.Contains(t, sql, `WHERE etiquetas && '{"t1"}'::text[]`)
	assert.Contains(t, sql, "ORDER BY RANDOM() LIMIT 8")
}

func TestMostDownloadedQuery(t *testing.T) {
	sql := dryRunDB(t).ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out []models.Wallpaper
		return mostDownloadedQuery(tx, 15).Find(&out)
	})
	assert.Contains(t, sql, "WHERE numero_descargas > 0")
	assert.Contains(t, sql, "ORDER BY numero_descargas DESC, id ASC LIMIT 15")
}

func TestIncrementQueryIsAtomic(t *testing.T) {
	id := "0b6c3f5e-8d1a-4c1e-9f3a-2a7d5e6f7a8b"
	sql := dryRunDB(t).ToSQL(func(tx *gorm.DB) *gorm.DB {
		var w models.Wallpaper
		return incrementQuery(tx, &w, id, 3)
	})
	assert.Contains(t, sql, `UPDATE "fondos" SET "numero_descargas"=numero_descargas + 3`)
	assert.Contains(t, sql, "WHERE id = '"+id+"'")
	assert.Contains(t, sql, "RETURNING *")
}

func TestTotalDownloadsQuery(t *testing.T) {
	sql := dryRunDB(t).ToSQL(func(tx *gorm.DB) *gorm.DB {
		var total int64
		return totalDownloadsQuery(tx).Scan(&total)
	})
	assert.Contains(t, sql, `SELECT COALESCE(SUM(numero_descargas), 0) FROM "fondos"`)
	assert.NotContains(t, sql, "WHERE")
}

func TestTotalDownloadsEmptyStoreIsZero(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec(`CREATE TABLE fondos (id TEXT PRIMARY KEY, numero_descargas INTEGER NOT NULL DEFAULT 0)`).Error)
	repo := NewRepository(db)

	total, err := repo.TotalDownloads(t.Context())
	require.NoError(t, err)
	assert.Zero(t, total)

	require.NoError(t, db.Exec(`INSERT INTO fondos (id, numero_descargas) VALUES ('a', 10), ('b', 5), ('c', 0)`).Error)
	total, err = repo.TotalDownloads(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
}

func TestUpdateQueryReturnsRow(t *testing.T) {
	id := "0b6c3f5e-8d1a-4c1e-9f3a-2a7d5e6f7a8b"
	sql := dryRunDB(t).ToSQL(func(tx *gorm.DB) *gorm.DB {
		var w models.Wallpaper
		return updateQuery(tx, &w, id, map[string]any{
			"titulo":    "Atardecer",
			"etiquetas": models.StringArray{"t1"},
		})
	})
	assert.Contains(t, sql, `UPDATE "fondos" SET`)
	assert.Contains(t, sql, `"titulo"='Atardecer'`)
	assert.Contains(t, sql, `"etiquetas"='{"t1"}'`)
	assert.Contains(t, sql, "WHERE id = '"+id+"'")
	assert.Contains(t, sql, "RETURNING *")
	assert.NotContains(t, sql, "numero_descargas")
	assert.NotContains(t, sql, "fecha_publicacion")
}

func TestRepositoryUpdateWithoutFieldsReadsRow(t *testing.T) {
	repo := NewRepository(dryRunDB(t))
	_, err := repo.Update(t.Context(), "no-es-uuid", map[string]any{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = repo.Update(t.Context(), "no-es-uuid", map[string]any{"titulo": "x"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
	assert.Equal(t, "montaña", escapeLike("montaña"))
}

func TestRepositoryRejectsMalformedIDs(t *testing.T) {
	repo := NewRepository(dryRunDB(t))
	ctx := t.Context()

	_, err := repo.Get(ctx, "no-es-uuid")
	assert.ErrorContains(t, err, "Fondo con id no-es-uuid no encontrado")
	assert.Error(t, repo.Delete(ctx, "1"))
	_, err = repo.IncrementDownloads(ctx, "1", 1)
	assert.Error(t, err)
}
