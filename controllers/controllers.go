package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/selorm/prodscribe/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserRepo and ProductRepo are the store surfaces the handlers depend on;
// the mongo-backed store package satisfies both.
type UserRepo interface {
	Insert(ctx context.Context, u *models.User) (bson.ObjectID, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	TouchUpdatedAt(ctx context.Context, id bson.ObjectID) error
}

type ProductRepo interface {
	Insert(ctx context.Context, p *models.Product) (bson.ObjectID, error)
	FindByID(ctx context.Context, id, ownerID bson.ObjectID) (*models.Product, error)
	FindAllByOwner(ctx context.Context, ownerID bson.ObjectID, skip, limit int64) ([]models.Product, error)
	CountByOwner(ctx context.Context, ownerID bson.ObjectID) (int64, error)
	UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) error
	DeleteByID(ctx context.Context, id, ownerID bson.ObjectID) error
}

// currentUserID resolves the authenticated caller set by the auth middleware.
func currentUserID(c *gin.Context) (bson.ObjectID, bool) {
	userIDStr, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
		return bson.ObjectID{}, false
	}

	userID, err := bson.ObjectIDFromHex(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid auth context"})
		return bson.ObjectID{}, false
	}
	return userID, true
}

// productID parses the :id route param.
func productID(c *gin.Context) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return bson.ObjectID{}, false
	}
	return id, true
}
