package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/selorm/prodscribe/content"
	"github.com/selorm/prodscribe/dto"
	"github.com/selorm/prodscribe/store"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ContentGenerator is the orchestration surface behind the generation
// endpoints.
type ContentGenerator interface {
	GenerateAll(ctx context.Context, id, ownerID bson.ObjectID, style content.Style) (bson.M, error)
	GenerateField(ctx context.Context, id, ownerID bson.ObjectID, field string) (bson.M, error)
	CompleteMissing(ctx context.Context, id, ownerID bson.ObjectID) (bson.M, error)
}

type ContentController struct {
	Generator ContentGenerator
	Log       logrus.FieldLogger
}

func styleFromDTO(body dto.GenerateOptionsDTO) content.Style {
	return content.Style{
		Tone:       body.Tone,
		Length:     body.Length,
		Audience:   body.Audience,
		Keywords:   body.Keywords,
		Background: body.Background,
		Lighting:   body.Lighting,
		Angle:      body.Angle,
	}
}

// GenerateAll regenerates every generator-owned field plus the product
// image, persisting one merged patch.
func (cc *ContentController) GenerateAll() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		id, ok := productID(c)
		if !ok {
			return
		}

		var body dto.GenerateOptionsDTO
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&body); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		patch, err := cc.Generator.GenerateAll(c.Request.Context(), id, userID, styleFromDTO(body))
		if err != nil {
			cc.respondGenerationError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"product_id": id.Hex(), "generated_content": patch})
	}
}

// GenerateField regenerates one named field.
func (cc *ContentController) GenerateField() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		id, ok := productID(c)
		if !ok {
			return
		}

		field := c.Param("field")
		patch, err := cc.Generator.GenerateField(c.Request.Context(), id, userID, field)
		if err != nil {
			cc.respondGenerationError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"product_id": id.Hex(), "field": field, "generated_content": patch})
	}
}

// CompleteMissing fills only the required fields that are currently empty.
func (cc *ContentController) CompleteMissing() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		id, ok := productID(c)
		if !ok {
			return
		}

		patch, err := cc.Generator.CompleteMissing(c.Request.Context(), id, userID)
		if err != nil {
			cc.respondGenerationError(c, err)
			return
		}

		if len(patch) == 0 {
			c.JSON(http.StatusOK, gin.H{"product_id": id.Hex(), "message": "nothing to generate"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product_id": id.Hex(), "generated_content": patch})
	}
}

// respondGenerationError maps orchestrator failures onto the error taxonomy:
// caller input, missing/foreign resource, or a generic upstream failure.
func (cc *ContentController) respondGenerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, content.ErrUnknownField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	default:
		cc.Log.WithError(err).Error("content generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error generating content"})
	}
}
