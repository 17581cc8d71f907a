package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	stdimage "image"
	"path/filepath"
	"strings"
	"time"

	"github.com/zenith-gallery/core/internal/models"
	"github.com/zenith-gallery/core/internal/pkg/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Service struct {
	coll      *mongo.Collection
	storage   Storage
	maxPixels int64
	log       *zap.Logger
	now       func() time.Time
}

// NewService builds the image service. Images declaring more than maxPixels
// pixels are rejected before any full decode.
func NewService(db *mongo.Database, storage Storage, maxPixels int64, log *zap.Logger) *Service {
	return &Service{
		coll:      db.Collection(models.CollectionImages),
		storage:   storage,
		maxPixels: maxPixels,
		log:       log,
		now:       time.Now,
	}
}

// Upload stores the bytes and records their metadata. A BlurHash failure is
// logged and leaves the placeholder empty.
func (s *Service) Upload(ctx context.Context, originalName string, data []byte) (*models.Image, error) {
	if len(data) == 0 {
		return nil, apperr.Validation("No se ha proporcionado ninguna imagen")
	}
	cfg, format, err := stdimage.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, apperr.Validation("No se pudieron determinar las dimensiones de la imagen")
	}
	if err := s.checkPixels(cfg); err != nil {
		return nil, err
	}

	key, err := StorageKey(originalName, format)
	if err != nil {
		return nil, err
	}
	url, err := s.storage.Put(ctx, key, data, contentTypeFor(filepath.Ext(key)))
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	hash, err := ComputeBlurHash(data)
	if err != nil {
		s.log.Warn("blurhash failed", zap.String("filename", key), zap.Error(err))
	}

	doc := models.Image{
		URL:       url,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Tipo:      DeviceClass(cfg.Width),
		Filename:  key,
		Format:    format,
		BlurHash:  hash,
		CreatedAt: s.now().UTC(),
	}
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.log.Warn("orphan upload not removed", zap.String("filename", key), zap.Error(delErr))
		}
		return nil, fmt.Errorf("insert image: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return &doc, nil
}

func (s *Service) List(ctx context.Context) ([]models.Image, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	out := []models.Image{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Image, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, notFound(id)
	}
	var doc models.Image
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("get image %s: %w", id, err)
	}
	return &doc, nil
}

// Update applies the supplied fields only.
func (s *Service) Update(ctx context.Context, id string, dto *UpdateImageDTO) (*models.Image, error) {
	set := bson.M{}
	if dto.URL != nil {
		set["url"] = strings.TrimSpace(*dto.URL)
	}
	if dto.Width != nil {
		set["width"] = *dto.Width
	}
	if dto.Height != nil {
		set["height"] = *dto.Height
	}
	if dto.Tipo != nil {
		set["tipo"] = *dto.Tipo
	}
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, notFound(id)
	}
	var doc models.Image
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("update image %s: %w", id, err)
	}
	return &doc, nil
}

// Delete removes the metadata, then the blob on a best-effort basis.
// Wallpapers pointing at the image are not touched.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return notFound(id)
	}
	var doc models.Image
	if err := s.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return notFound(id)
		}
		return fmt.Errorf("delete image %s: %w", id, err)
	}
	if doc.Filename != "" {
		if err := s.storage.Delete(ctx, doc.Filename); err != nil {
			s.log.Warn("image blob not removed", zap.String("filename", doc.Filename), zap.Error(err))
		}
	}
	return nil
}

// IDsByTipo returns the ids of every image of the given device class.
func (s *Service) IDsByTipo(ctx context.Context, tipo string) ([]string, error) {
	cur, err := s.coll.Find(ctx, bson.M{"tipo": tipo}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("resolve images by tipo: %w", err)
	}
	var docs []models.Image
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID.Hex())
	}
	return ids, nil
}

// Original returns the stored bytes untouched.
func (s *Service) Original(ctx context.Context, id string) (*Download, error) {
	doc, data, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(doc.Filename)), ".")
	if ext == "" || ext == "jpeg" {
		ext = "jpg"
	}
	return &Download{
		Data:        data,
		ContentType: contentTypeFor(ext),
		Filename:    OriginalFilename(doc.ID.Hex(), ext),
	}, nil
}

// Resized returns the image at half its size.
func (s *Service) Resized(ctx context.Context, id string) (*Download, error) {
	doc, data, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	cfg, _, err := stdimage.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("resize image %s: %w", id, err)
	}
	if err := s.checkPixels(cfg); err != nil {
		return nil, err
	}
	out, err := HalveImage(data)
	if err != nil {
		return nil, fmt.Errorf("resize image %s: %w", id, err)
	}
	return &Download{
		Data:        out.Data,
		ContentType: out.ContentType,
		Filename:    ResizedFilename(doc.ID.Hex(), out.Ext),
	}, nil
}

func (s *Service) load(ctx context.Context, id string) (*models.Image, []byte, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if doc.Filename == "" {
		return nil, nil, apperr.NotFound("Archivo de imagen no encontrado")
	}
	data, err := s.storage.Get(ctx, doc.Filename)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return nil, nil, apperr.NotFound("Archivo de imagen no encontrado")
		}
		return nil, nil, fmt.Errorf("read image %s: %w", id, err)
	}
	return doc, data, nil
}

func (s *Service) checkPixels(cfg stdimage.Config) error {
	if s.maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > s.maxPixels {
		return apperr.Validationf("La imagen supera el máximo de %d píxeles", s.maxPixels)
	}
	return nil
}

func notFound(id string) error {
	return apperr.NotFoundf("Imagen con ID %s no encontrada", id)
}
