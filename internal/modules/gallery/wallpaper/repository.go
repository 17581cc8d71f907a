package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/zenith-gallery/core/internal/models"
	"github.com/zenith-gallery/core/internal/pkg/apperr"
	"github.com/zenith-gallery/core/internal/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const listOrder = "fecha_publicacion DESC, id ASC"

// Repository is the relational store of wallpapers.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, f Filter, page pagination.Query) ([]models.Wallpaper, error) {
	out := []models.Wallpaper{}
	if err := listQuery(r.db.WithContext(ctx), f, page).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list wallpapers: %w", err)
	}
	return out, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Wallpaper{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count wallpapers: %w", err)
	}
	return n, nil
}

// Random returns up to limit rows in random order, restricted to rows
// tagged with any of tagIDs when tagIDs is non-nil.
func (r *Repository) Random(ctx context.Context, tagIDs []string, limit int) ([]models.Wallpaper, error) {
	out := []models.Wallpaper{}
	if err := randomQuery(r.db.WithContext(ctx), tagIDs, limit).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("random wallpapers: %w", err)
	}
	return out, nil
}

// MostDownloaded returns rows with at least one download, most downloaded first.
func (r *Repository) MostDownloaded(ctx context.Context, limit int) ([]models.Wallpaper, error) {
	out := []models.Wallpaper{}
	if err := mostDownloadedQuery(r.db.WithContext(ctx), limit).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("most downloaded wallpapers: %w", err)
	}
	return out, nil
}

func (r *Repository) TotalDownloads(ctx context.Context) (int64, error) {
	var total int64
	if err := totalDownloadsQuery(r.db.WithContext(ctx)).Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("sum downloads: %w", err)
	}
	return total, nil
}

func (r *Repository) Create(ctx context.Context, w *models.Wallpaper) error {
	if err := r.db.WithContext(ctx).Create(w).Error; err != nil {
		return writeError(err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*models.Wallpaper, error) {
	if !validID(id) {
		return nil, notFound(id)
	}
	var w models.Wallpaper
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("get wallpaper %s: %w", id, err)
	}
	return &w, nil
}

// Update overwrites the given columns and returns the updated row.
func (r *Repository) Update(ctx context.Context, id string, fields map[string]any) (*models.Wallpaper, error) {
	if len(fields) == 0 {
		return r.Get(ctx, id)
	}
	if !validID(id) {
		return nil, notFound(id)
	}
	var w models.Wallpaper
	res := updateQuery(r.db.WithContext(ctx), &w, id, fields)
	if res.Error != nil {
		return nil, writeError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, notFound(id)
	}
	return &w, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return notFound(id)
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Wallpaper{})
	if res.Error != nil {
		return fmt.Errorf("delete wallpaper %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(id)
	}
	return nil
}

// IncrementDownloads adds n to the counter in a single statement.
func (r *Repository) IncrementDownloads(ctx context.Context, id string, n int) (*models.Wallpaper, error) {
	if !validID(id) {
		return nil, notFound(id)
	}
	var w models.Wallpaper
	res := incrementQuery(r.db.WithContext(ctx), &w, id, n)
	if res.Error != nil {
		return nil, fmt.Errorf("increment downloads %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, notFound(id)
	}
	return &w, nil
}

func listQuery(tx *gorm.DB, f Filter, page pagination.Query) *gorm.DB {
	tx = tx.Model(&models.Wallpaper{})
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		text := tx.Session(&gorm.Session{NewDB: true}).
			Where("titulo ILIKE ?", pattern).
			Or("descripcion ILIKE ?", pattern)
		if len(f.TagSearchIDs) > 0 {
			text = text.Or("etiquetas && ?::text[]", models.StringArray(f.TagSearchIDs))
		}
		if len(f.ColorSearchIDs) > 0 {
			text = text.Or("colores && ?::text[]", models.StringArray(f.ColorSearchIDs))
		}
		tx = tx.Where(text)
	}
	if f.TagIDs != nil {
		tx = tx.Where("etiquetas && ?::text[]", models.StringArray(f.TagIDs))
	}
	if f.ColorIDs != nil {
		tx = tx.Where("colores && ?::text[]", models.StringArray(f.ColorIDs))
	}
	if f.ImageIDs != nil {
		tx = tx.Where("imagen IN ?", f.ImageIDs)
	}
	return page.Apply(tx.Order(listOrder))
}

func randomQuery(tx *gorm.DB, tagIDs []string, limit int) *gorm.DB {
	tx = tx.Model(&models.Wallpaper{})
	if tagIDs != nil {
		tx = tx.Where("etiquetas && ?::text[]", models.StringArray(tagIDs))
	}
	return tx.Order("RANDOM()").Limit(limit)
}

func mostDownloadedQuery(tx *gorm.DB, limit int) *gorm.DB {
	return tx.Model(&models.Wallpaper{}).
		Where("numero_descargas > 0").
		Order("numero_descargas DESC, id ASC").
		Limit(limit)
}

func totalDownloadsQuery(tx *gorm.DB) *gorm.DB {
	return tx.Model(&models.Wallpaper{}).Select("COALESCE(SUM(numero_descargas), 0)")
}

func updateQuery(tx *gorm.DB, dest *models.Wallpaper, id string, fields map[string]any) *gorm.DB {
	return tx.Model(dest).Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(fields)
}

func incrementQuery(tx *gorm.DB, dest *models.Wallpaper, id string, n int) *gorm.DB {
	return tx.Model(dest).Clauses(clause.Returning{}).
		Where("id = ?", id).
		UpdateColumn("numero_descargas", gorm.Expr("numero_descargas + ?", n))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func writeError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("El fondo ya existe").WithCause(err)
	}
	return fmt.Errorf("write wallpaper: %w", err)
}

func notFound(id string) error {
	return apperr.NotFoundf("Fondo con id %s no encontrado", id)
}
