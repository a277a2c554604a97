package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bizdesk/bizdesk-api/internal/core/domain"
	"github.com/bizdesk/bizdesk-api/internal/pkg/docjson"
)

// ResourceRepository is the generic owner-filtered document store behind
// the CRUD protocol. One instance per collection. Documents returned by
// every method have already passed through docjson, so primitive BSON
// types never cross the infrastructure boundary.
type ResourceRepository struct {
	col *mongo.Collection
}

func NewResourceRepository(db *mongo.Database, collection string) *ResourceRepository {
	return &ResourceRepository{col: db.Collection(collection)}
}

func (r *ResourceRepository) Insert(ctx context.Context, doc domain.Document) (domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, bson.M(doc))
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	stored := make(domain.Document, len(doc)+1)
	for k, v := range doc {
		stored[k] = v
	}
	stored["_id"] = res.InsertedID
	return docjson.Document(stored), nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, ownerID, id string) (domain.Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bson.M
	if err := r.col.FindOne(ctx, r.ownedFilter(ownerID, oid)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return docjson.Document(doc), nil
}

func (r *ResourceRepository) List(ctx context.Context, ownerID string, extra domain.Document) ([]domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"createdBy": ownerID}
	for k, v := range extra {
		filter[k] = v
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}

	docs := make([]domain.Document, len(raw))
	for i, d := range raw {
		docs[i] = docjson.Document(d)
	}
	return docs, nil
}

func (r *ResourceRepository) Update(ctx context.Context, ownerID, id string, set domain.Document) (domain.Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, r.ownedFilter(ownerID, oid), bson.M{"$set": bson.M(set)})
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return nil, domain.ErrNoChanges
	}

	var doc bson.M
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("reload document: %w", err)
	}
	return docjson.Document(doc), nil
}

func (r *ResourceRepository) Delete(ctx context.Context, ownerID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, r.ownedFilter(ownerID, oid))
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the owner/creation-time index backing list
// queries.
func (r *ResourceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdBy", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func (r *ResourceRepository) ownedFilter(ownerID string, oid primitive.ObjectID) bson.M {
	return bson.M{"_id": oid, "createdBy": ownerID}
}
