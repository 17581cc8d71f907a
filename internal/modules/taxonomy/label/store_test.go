package label

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenith-gallery/core/internal/pkg/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func labelDoc(id primitive.ObjectID, name string) bson.D {
	return bson.D{{Key: "_id", Value: id}, {Key: "nombre", Value: name}}
}

func newTestStore(mt *mtest.T, kind Kind) *Store {
	return &Store{coll: mt.Coll, kind: kind}
}

func ns(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestStoreCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("normalizes name", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		doc, err := newTestStore(mt, Tags).Create(ctx, "  Paisaje ")
		require.NoError(mt, err)
		assert.Equal(mt, "paisaje", doc.Nombre)
		assert.False(mt, doc.ID.IsZero())
	})

	mt.Run("duplicate is conflict", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error",
		}))
		_, err := newTestStore(mt, Colors).Create(ctx, "Azul")
		require.ErrorIs(mt, err, apperr.ErrConflict)
		assert.Contains(mt, err.Error(), `El color "azul" ya existe`)
	})

	mt.Run("blank name never reaches the store", func(mt *mtest.T) {
		_, err := newTestStore(mt, Tags).Create(ctx, "   ")
		assert.ErrorIs(mt, err, apperr.ErrValidation)
	})
}

func TestStoreListAndGet(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	mt.Run("list decodes all batches", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns(mt), mtest.FirstBatch, labelDoc(a, "azul")),
			mtest.CreateCursorResponse(0, ns(mt), mtest.NextBatch, labelDoc(b, "rojo")),
		)
		docs, err := newTestStore(mt, Colors).List(ctx)
		require.NoError(mt, err)
		require.Len(mt, docs, 2)
		assert.Equal(mt, "azul", docs[0].Nombre)
		assert.Equal(mt, b, docs[1].ID)
	})

	mt.Run("list of empty collection is empty slice", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))
		docs, err := newTestStore(mt, Colors).List(ctx)
		require.NoError(mt, err)
		assert.NotNil(mt, docs)
		assert.Empty(mt, docs)
	})

	mt.Run("get found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, labelDoc(a, "azul")))
		doc, err := newTestStore(mt, Colors).Get(ctx, a.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "azul", doc.Nombre)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))
		_, err := newTestStore(mt, Colors).Get(ctx, a.Hex())
		require.ErrorIs(mt, err, apperr.ErrNotFound)
		assert.Equal(mt, "Color con ID "+a.Hex()+" no encontrado", err.Error())
	})

	mt.Run("get malformed id is not found", func(mt *mtest.T) {
		_, err := newTestStore(mt, Tags).Get(ctx, "xyz")
		require.ErrorIs(mt, err, apperr.ErrNotFound)
		assert.Equal(mt, "Etiqueta con ID xyz no encontrada", err.Error())
	})
}

func TestStoreUpdateAndDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	id := primitive.NewObjectID()

	mt.Run("update returns new document", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: labelDoc(id, "verde")},
		})
		name := " Verde"
		doc, err := newTestStore(mt, Colors).Update(ctx, id.Hex(), &name)
		require.NoError(mt, err)
		assert.Equal(mt, "verde", doc.Nombre)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})
		name := "verde"
		_, err := newTestStore(mt, Colors).Update(ctx, id.Hex(), &name)
		assert.ErrorIs(mt, err, apperr.ErrNotFound)
	})

	mt.Run("update to blank name", func(mt *mtest.T) {
		name := "  "
		_, err := newTestStore(mt, Colors).Update(ctx, id.Hex(), &name)
		assert.ErrorIs(mt, err, apperr.ErrValidation)
	})

	mt.Run("update duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 11000, Name: "DuplicateKey", Message: "E11000 duplicate key error",
		}))
		name := "rojo"
		_, err := newTestStore(mt, Colors).Update(ctx, id.Hex(), &name)
		assert.ErrorIs(mt, err, apperr.ErrConflict)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		assert.NoError(mt, newTestStore(mt, Tags).Delete(ctx, id.Hex()))
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		assert.ErrorIs(mt, newTestStore(mt, Tags).Delete(ctx, id.Hex()), apperr.ErrNotFound)
	})
}

func TestStoreLookups(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	mt.Run("ids by names", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: a}}, bson.D{{Key: "_id", Value: b}}))
		ids, err := newTestStore(mt, Tags).IDsByNames(ctx, []string{"mar", "cielo"})
		require.NoError(mt, err)
		assert.Equal(mt, []string{a.Hex(), b.Hex()}, ids)
	})

	mt.Run("empty inputs skip the store", func(mt *mtest.T) {
		s := newTestStore(mt, Tags)
		ids, err := s.IDsByNames(ctx, nil)
		require.NoError(mt, err)
		assert.Empty(mt, ids)

		ids, err = s.IDsMatching(ctx, "")
		require.NoError(mt, err)
		assert.Empty(mt, ids)

		names, err := s.NamesByIDs(ctx, []string{"not-an-id"})
		require.NoError(mt, err)
		assert.Empty(mt, names)
	})

	mt.Run("ids matching search", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "_id", Value: a}}))
		ids, err := newTestStore(mt, Tags).IDsMatching(ctx, "c++")
		require.NoError(mt, err)
		assert.Equal(mt, []string{a.Hex()}, ids)
	})

	mt.Run("names by ids drops unknown", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, labelDoc(a, "mar")))
		names, err := newTestStore(mt, Tags).NamesByIDs(ctx, []string{a.Hex(), b.Hex(), "bad"})
		require.NoError(mt, err)
		assert.Equal(mt, map[string]string{a.Hex(): "mar"}, names)
	})
}
