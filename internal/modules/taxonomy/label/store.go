package label

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/zenith-gallery/core/internal/models"
	"github.com/zenith-gallery/core/internal/pkg/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store keeps tag or color documents in one Mongo collection.
type Store struct {
	coll *mongo.Collection
	kind Kind
}

func NewStore(db *mongo.Database, kind Kind) *Store {
	return &Store{coll: db.Collection(kind.Collection), kind: kind}
}

func (s *Store) Kind() Kind { return s.kind }

func (s *Store) Create(ctx context.Context, name string) (*models.Label, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, apperr.Validation("El nombre es obligatorio")
	}

	doc := models.Label{Nombre: name}
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, s.writeError(err, name)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return &doc, nil
}

// List returns every document ordered by name.
func (s *Store) List(ctx context.Context) ([]models.Label, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "nombre", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind.Collection, err)
	}
	out := []models.Label{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.kind.Collection, err)
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.Label, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, s.notFound(id)
	}
	var doc models.Label
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, s.notFound(id)
		}
		return nil, fmt.Errorf("get %s %s: %w", s.kind.Collection, id, err)
	}
	return &doc, nil
}

// Update replaces the name. A nil name leaves the document untouched.
func (s *Store) Update(ctx context.Context, id string, name *string) (*models.Label, error) {
	if name == nil {
		return s.Get(ctx, id)
	}
	normalized := NormalizeName(*name)
	if normalized == "" {
		return nil, apperr.Validation("El nombre es obligatorio")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, s.notFound(id)
	}

	var doc models.Label
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"nombre": normalized}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, s.notFound(id)
		}
		return nil, s.writeError(err, normalized)
	}
	return &doc, nil
}

// Delete removes the document. Wallpapers referencing it are left as they are.
func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return s.notFound(id)
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", s.kind.Collection, id, err)
	}
	if res.DeletedCount == 0 {
		return s.notFound(id)
	}
	return nil
}

// IDsByNames resolves exact (already normalized) names to hex ids.
func (s *Store) IDsByNames(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	return s.findIDs(ctx, bson.M{"nombre": bson.M{"$in": names}})
}

// IDsMatching resolves names containing search, case-insensitively.
func (s *Store) IDsMatching(ctx context.Context, search string) ([]string, error) {
	if search == "" {
		return nil, nil
	}
	filter := bson.M{"nombre": primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}}
	return s.findIDs(ctx, filter)
}

// NamesByIDs maps hex ids to names. Malformed and unknown ids are absent
// from the result.
func (s *Store) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	names := make(map[string]string, len(oids))
	if len(oids) == 0 {
		return names, nil
	}

	cur, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("resolve %s names: %w", s.kind.Collection, err)
	}
	var docs []models.Label
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.kind.Collection, err)
	}
	for _, doc := range docs {
		names[doc.ID.Hex()] = doc.Nombre
	}
	return names, nil
}

func (s *Store) findIDs(ctx context.Context, filter bson.M) ([]string, error) {
	cur, err := s.coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("resolve %s ids: %w", s.kind.Collection, err)
	}
	var docs []models.Label
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.kind.Collection, err)
	}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID.Hex())
	}
	return ids, nil
}

func (s *Store) notFound(id string) error {
	return apperr.NotFoundf(s.kind.notFoundFormat, id)
}

func (s *Store) writeError(err error, name string) error {
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflictf(s.kind.duplicateFormat, name).WithCause(err)
	}
	return fmt.Errorf("write %s: %w", s.kind.Collection, err)
}
