package store

import (
	"context"
	"errors"
	"time"

	"github.com/selorm/prodscribe/models"
	"github.com/selorm/prodscribe/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(col *mongo.Collection) *UserStore {
	return &UserStore{col: col}
}

// Insert fails with ErrDuplicateEmail when the email is taken; it never
// overwrites an existing account.
func (s *UserStore) Insert(ctx context.Context, u *models.User) (bson.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, u)
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return bson.ObjectID{}, ErrDuplicateEmail
		}
		return bson.ObjectID{}, err
	}
	id, _ := res.InsertedID.(bson.ObjectID)
	return id, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) TouchUpdatedAt(ctx context.Context, id bson.ObjectID) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
	return err
}
