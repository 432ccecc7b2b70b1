package controllers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/selorm/prodscribe/dto"
	"github.com/selorm/prodscribe/models"
	"github.com/selorm/prodscribe/storage"
	"github.com/selorm/prodscribe/store"
	"github.com/selorm/prodscribe/utils"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type ProductsController struct {
	Products ProductRepo
	Images   storage.Store
	Log      logrus.FieldLogger

	MaxListLimit     int
	DefaultListLimit int
}

func (p *ProductsController) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		page := utils.ParseIntDefault(c.Query("page"), 1)
		limit := utils.ParseIntDefault(c.Query("limit"), p.DefaultListLimit)
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = p.DefaultListLimit
		}
		if limit > p.MaxListLimit {
			limit = p.MaxListLimit
		}
		skip := int64((page - 1) * limit)

		ctx := c.Request.Context()
		products, err := p.Products.FindAllByOwner(ctx, userID, skip, int64(limit))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		total, err := p.Products.CountByOwner(ctx, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": products,
			"page":  page,
			"limit": limit,
			"total": total,
		})
	}
}

func (p *ProductsController) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		id, ok := productID(c)
		if !ok {
			return
		}

		product, err := p.Products.FindByID(c.Request.Context(), id, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func (p *ProductsController) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var body dto.CreateProductDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now().UTC()
		product := models.Product{
			UserID:           userID,
			Name:             strings.TrimSpace(body.Name),
			Price:            body.Price,
			Brand:            body.Brand,
			Category:         body.Category,
			Subcategory:      body.Subcategory,
			BasicDescription: body.BasicDescription,
			Features:         orEmpty(body.Features),
			Materials:        orEmpty(body.Materials),
			Colors:           orEmpty(body.Colors),
			Tags:             orEmpty(body.Tags),
			MarketingCopy: models.MarketingCopy{
				SocialMedia: map[string]string{"instagram": "", "facebook": ""},
			},
			CreatedAt: now,
			UpdatedAt: now,
		}

		id, err := p.Products.Insert(c.Request.Context(), &product)
		if err != nil {
			p.Log.WithError(err).Error("create product failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
			return
		}
		product.ID = id

		c.JSON(http.StatusCreated, product)
	}
}

func (p *ProductsController) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		id, ok := productID(c)
		if !ok {
			return
		}

		var body dto.UpdateProductDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()

		// Ownership check before any write.
		if _, err := p.Products.FindByID(ctx, id, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		set := bson.M{}
		if body.Name != nil {
			set["name"] = *body.Name
		}
		if body.Price != nil {
			set["price"] = *body.Price
		}
		if body.Brand != nil {
			set["brand"] = *body.Brand
		}
		if body.Category != nil {
			set["category"] = *body.Category
		}
		if body.Subcategory != nil {
			set["subcategory"] = *body.Subcategory
		}
		if body.BasicDescription != nil {
			set["basicDescription"] = *body.BasicDescription
		}
		if body.Features != nil {
			set["features"] = *body.Features
		}
		if body.Materials != nil {
			set["materials"] = *body.Materials
		}
		if body.Colors != nil {
			set["colors"] = *body.Colors
		}
		if body.Tags != nil {
			set["tags"] = *body.Tags
		}

		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}

		if err := p.Products.UpdateByID(ctx, id, set); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db update failed", "details": err.Error()})
			return
		}

		updated, err := p.Products.FindByID(ctx, id, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func (p *ProductsController) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		id, ok := productID(c)
		if !ok {
			return
		}

		if err := p.Products.DeleteByID(c.Request.Context(), id, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "product deleted successfully"})
	}
}

// UploadImage replaces a product's image with an uploaded file, deleting the
// previous stored image when present.
func (p *ProductsController) UploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		id, ok := productID(c)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		product, err := p.Products.FindByID(ctx, id, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image file"})
			return
		}
		defer file.Close()

		if product.ImageURL != "" {
			// best effort; a stale object must not block the replace
			if err := p.Images.Delete(ctx, product.ImageURL); err != nil {
				p.Log.WithError(err).Warn("delete previous product image failed")
			}
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		contentType := fileHeader.Header.Get("Content-Type")
		imageURL, err := p.Images.Save(ctx, file, utils.GenerateSlug(product.Name), ext, contentType)
		if err != nil {
			p.Log.WithError(err).Error("store product image failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error uploading image"})
			return
		}

		if err := p.Products.UpdateByID(ctx, id, bson.M{"imageUrl": imageURL}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"image_url": imageURL})
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
