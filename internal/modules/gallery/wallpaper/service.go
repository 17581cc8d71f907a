package wallpaper

import (
	"context"
	"strings"

	"github.com/zenith-gallery/core/internal/models"
	"github.com/zenith-gallery/core/internal/modules/taxonomy/label"
	"github.com/zenith-gallery/core/internal/pkg/apperr"
	"github.com/zenith-gallery/core/internal/pkg/pagination"
	"go.uber.org/zap"
)

// Store is the persistence the service needs. *Repository implements it.
type Store interface {
	List(ctx context.Context, f Filter, page pagination.Query) ([]models.Wallpaper, error)
	Count(ctx context.Context) (int64, error)
	Random(ctx context.Context, tagIDs []string, limit int) ([]models.Wallpaper, error)
	Create(ctx context.Context, w *models.Wallpaper) error
	Get(ctx context.Context, id string) (*models.Wallpaper, error)
	Update(ctx context.Context, id string, fields map[string]any) (*models.Wallpaper, error)
	Delete(ctx context.Context, id string) error
	IncrementDownloads(ctx context.Context, id string, n int) (*models.Wallpaper, error)
}

// LabelResolver turns tag or color names into document ids.
type LabelResolver interface {
	IDsByNames(ctx context.Context, names []string) ([]string, error)
	IDsMatching(ctx context.Context, search string) ([]string, error)
}

// ImageResolver finds image ids by device class.
type ImageResolver interface {
	IDsByTipo(ctx context.Context, tipo string) ([]string, error)
}

type Service struct {
	store  Store
	tags   LabelResolver
	colors LabelResolver
	images ImageResolver
	log    *zap.Logger
}

func NewService(store Store, tags, colors LabelResolver, images ImageResolver, log *zap.Logger) *Service {
	return &Service{store: store, tags: tags, colors: colors, images: images, log: log}
}

// List resolves names and free text against the document store once, then
// runs a single filtered query. Names that resolve to no ids add no filter.
func (s *Service) List(ctx context.Context, q ListQuery) ([]models.Wallpaper, error) {
	if err := q.Query.Validate(); err != nil {
		return nil, err
	}
	tipo := strings.ToLower(strings.TrimSpace(q.Tipo))
	if tipo != "" && tipo != models.TipoMobile && tipo != models.TipoDesktop {
		return nil, apperr.Validationf("tipo debe ser %q o %q", models.TipoMobile, models.TipoDesktop)
	}

	// Names that match no stored label add no filter.
	var f Filter
	if names := label.NormalizeNames(q.Etiquetas); len(names) > 0 {
		ids, err := s.tags.IDsByNames(ctx, names)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			f.TagIDs = ids
		}
	}
	if names := label.NormalizeNames(q.Colores); len(names) > 0 {
		ids, err := s.colors.IDsByNames(ctx, names)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			f.ColorIDs = ids
		}
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		tagIDs, err := s.tags.IDsMatching(ctx, search)
		if err != nil {
			return nil, err
		}
		colorIDs, err := s.colors.IDsMatching(ctx, search)
		if err != nil {
			return nil, err
		}
		f.Search, f.TagSearchIDs, f.ColorSearchIDs = search, tagIDs, colorIDs
	}

	if tipo != "" {
		ids, err := s.images.IDsByTipo(ctx, tipo)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []models.Wallpaper{}, nil
		}
		f.ImageIDs = ids
	}

	return s.store.List(ctx, f, q.Query)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

// Recommended picks random wallpapers, restricted to the given tag names
// when any are supplied.
func (s *Service) Recommended(ctx context.Context, names []string) ([]models.Wallpaper, error) {
	names = label.NormalizeNames(names)
	if len(names) == 0 {
		return s.store.Random(ctx, nil, RecommendedLimit)
	}
	ids, err := s.tags.IDsByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Wallpaper{}, nil
	}
	return s.store.Random(ctx, ids, RecommendedLimit)
}

func (s *Service) Create(ctx context.Context, dto *CreateWallpaperDTO) (*models.Wallpaper, error) {
	if dto.Imagen == nil || strings.TrimSpace(*dto.Imagen) == "" {
		return nil, apperr.Validation("imagen es obligatoria")
	}
	w := &models.Wallpaper{
		Titulo:      dto.Titulo,
		Descripcion: dto.Descripcion,
		Colores:     toArray(dto.Colores),
		Etiquetas:   toArray(dto.Etiquetas),
		Imagen:      dto.Imagen,
	}
	if err := s.store.Create(ctx, w); err != nil {
		return nil, err
	}
	s.log.Info("wallpaper created", zap.String("id", w.ID))
	return w, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Wallpaper, error) {
	return s.store.Get(ctx, id)
}

// Update merges the supplied fields. Identity, publication date and the
// download counter are never written here.
func (s *Service) Update(ctx context.Context, id string, dto *UpdateWallpaperDTO) (*models.Wallpaper, error) {
	fields := map[string]any{}
	if dto.Titulo != nil {
		fields["titulo"] = *dto.Titulo
	}
	if dto.Descripcion != nil {
		fields["descripcion"] = *dto.Descripcion
	}
	if dto.Colores != nil {
		fields["colores"] = toArray(*dto.Colores)
	}
	if dto.Etiquetas != nil {
		fields["etiquetas"] = toArray(*dto.Etiquetas)
	}
	if dto.Imagen != nil {
		if strings.TrimSpace(*dto.Imagen) == "" {
			return nil, apperr.Validation("imagen no puede estar vacía")
		}
		fields["imagen"] = *dto.Imagen
	}
	return s.store.Update(ctx, id, fields)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("wallpaper deleted", zap.String("id", id))
	return nil
}

// IncrementDownloads validates n before touching the store.
func (s *Service) IncrementDownloads(ctx context.Context, id string, n int) (*models.Wallpaper, error) {
	if n <= 0 {
		return nil, apperr.Validation("El incremento debe ser un número válido.")
	}
	return s.store.IncrementDownloads(ctx, id, n)
}

func toArray(values []string) models.StringArray {
	out := make(models.StringArray, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
