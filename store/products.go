package store

import (
	"context"
	"errors"
	"time"

	"github.com/selorm/prodscribe/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ProductStore struct {
	col *mongo.Collection
}

func NewProductStore(col *mongo.Collection) *ProductStore {
	return &ProductStore{col: col}
}

func (s *ProductStore) Insert(ctx context.Context, p *models.Product) (bson.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, p)
	if err != nil {
		return bson.ObjectID{}, err
	}
	id, _ := res.InsertedID.(bson.ObjectID)
	return id, nil
}

// FindByID is owner-scoped: a product belonging to another user is
// indistinguishable from a missing one.
func (s *ProductStore) FindByID(ctx context.Context, id, ownerID bson.ObjectID) (*models.Product, error) {
	var p models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id, "userId": ownerID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *ProductStore) FindAllByOwner(ctx context.Context, ownerID bson.ObjectID, skip, limit int64) ([]models.Product, error) {
	findOpts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.col.Find(ctx, bson.M{"userId": ownerID}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	for cursor.Next(ctx) {
		var p models.Product
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, cursor.Err()
}

func (s *ProductStore) CountByOwner(ctx context.Context, ownerID bson.ObjectID) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"userId": ownerID})
}

// withUpdatedAt copies a $set patch and stamps updatedAt; the caller's map
// is never touched. The stamp wins over any caller-supplied value.
func withUpdatedAt(set bson.M) bson.M {
	stamped := make(bson.M, len(set)+1)
	for key, value := range set {
		stamped[key] = value
	}
	stamped["updatedAt"] = time.Now().UTC()
	return stamped
}

// UpdateByID applies a partial $set patch and stamps updatedAt.
func (s *ProductStore) UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) error {
	res, err := s.col.UpdateByID(ctx, id, bson.M{"$set": withUpdatedAt(set)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductStore) DeleteByID(ctx context.Context, id, ownerID bson.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
