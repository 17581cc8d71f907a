// Package popularity derives download rankings and the tags and colors
// most present among the top downloaded wallpapers.
package popularity

import (
	"context"
	"sort"

	"github.com/zenith-gallery/core/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	// TopLimit is the size of the most downloaded set.
	TopLimit = 15
	// UnknownName replaces names that could not be resolved.
	UnknownName = "Unknown"
)

// Ranking reads download counters. *wallpaper.Repository implements it.
type Ranking interface {
	MostDownloaded(ctx context.Context, limit int) ([]models.Wallpaper, error)
	TotalDownloads(ctx context.Context) (int64, error)
}

// NameResolver maps document ids to names, omitting ids with no document.
type NameResolver interface {
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

type TagCount struct {
	Etiqueta string `json:"etiqueta"`
	Count    int    `json:"count"`
}

type ColorCount struct {
	Color string `json:"color"`
	Count int    `json:"count"`
}

type Service struct {
	ranking Ranking
	tags    NameResolver
	colors  NameResolver
	log     *zap.Logger
}

func NewService(ranking Ranking, tags, colors NameResolver, log *zap.Logger) *Service {
	return &Service{ranking: ranking, tags: tags, colors: colors, log: log}
}

func (s *Service) MostDownloaded(ctx context.Context) ([]models.Wallpaper, error) {
	return s.ranking.MostDownloaded(ctx, TopLimit)
}

func (s *Service) TotalDownloads(ctx context.Context) (int64, error) {
	return s.ranking.TotalDownloads(ctx)
}

func (s *Service) PopularTags(ctx context.Context) ([]TagCount, error) {
	top, err := s.MostDownloaded(ctx)
	if err != nil {
		return nil, err
	}
	tallies := s.tally(ctx, s.tags, "etiquetas", top, func(w models.Wallpaper) []string { return w.Etiquetas })
	out := make([]TagCount, len(tallies))
	for i, t := range tallies {
		out[i] = TagCount{Etiqueta: t.name, Count: t.count}
	}
	return out, nil
}

func (s *Service) PopularColors(ctx context.Context) ([]ColorCount, error) {
	top, err := s.MostDownloaded(ctx)
	if err != nil {
		return nil, err
	}
	tallies := s.tally(ctx, s.colors, "colores", top, func(w models.Wallpaper) []string { return w.Colores })
	out := make([]ColorCount, len(tallies))
	for i, t := range tallies {
		out[i] = ColorCount{Color: t.name, Count: t.count}
	}
	return out, nil
}

type tally struct {
	name  string
	count int
}

// tally counts every referenced id once per occurrence and resolves the
// names with a single lookup. Ids without a document are dropped; a failed
// lookup degrades every name to UnknownName.
func (s *Service) tally(
	ctx context.Context,
	resolver NameResolver,
	kind string,
	top []models.Wallpaper,
	refs func(models.Wallpaper) []string,
) []tally {
	counts := map[string]int{}
	var ids []string
	for _, w := range top {
		for _, id := range refs(w) {
			if !primitive.IsValidObjectID(id) {
				continue
			}
			if counts[id] == 0 {
				ids = append(ids, id)
			}
			counts[id]++
		}
	}
	if len(ids) == 0 {
		return []tally{}
	}

	names, err := resolver.NamesByIDs(ctx, ids)
	if err != nil {
		s.log.Warn("popularity name lookup failed", zap.String("kind", kind), zap.Error(err))
		names = make(map[string]string, len(ids))
		for _, id := range ids {
			names[id] = UnknownName
		}
	}

	out := make([]tally, 0, len(ids))
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			continue
		}
		out = append(out, tally{name: name, count: counts[id]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}
