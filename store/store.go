package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ErrNotFound is returned when a lookup misses. Callers map it to an
// authorization/not-found response; it is not a store failure.
var ErrNotFound = errors.New("document not found")

// ErrDuplicateEmail is returned when a user insert violates the unique
// email index.
var ErrDuplicateEmail = errors.New("email already registered")

// EnsureIndexes creates the unique email index on users and the
// (userId, createdAt) listing index on products.
func EnsureIndexes(ctx context.Context, users, products *mongo.Collection) error {
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	})
	return err
}
