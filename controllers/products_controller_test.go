package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/selorm/prodscribe/models"
	"github.com/selorm/prodscribe/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type fakeProductRepo struct {
	products map[bson.ObjectID]*models.Product

	lastSkip  int64
	lastLimit int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[bson.ObjectID]*models.Product{}}
}

func (f *fakeProductRepo) Insert(_ context.Context, p *models.Product) (bson.ObjectID, error) {
	id := bson.NewObjectID()
	stored := *p
	stored.ID = id
	f.products[id] = &stored
	return id, nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id, ownerID bson.ObjectID) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok || p.UserID != ownerID {
		return nil, store.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductRepo) FindAllByOwner(_ context.Context, ownerID bson.ObjectID, skip, limit int64) ([]models.Product, error) {
	f.lastSkip = skip
	f.lastLimit = limit
	out := []models.Product{}
	for _, p := range f.products {
		if p.UserID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) CountByOwner(_ context.Context, ownerID bson.ObjectID) (int64, error) {
	var n int64
	for _, p := range f.products {
		if p.UserID == ownerID {
			n++
		}
	}
	return n, nil
}

func (f *fakeProductRepo) UpdateByID(_ context.Context, id bson.ObjectID, set bson.M) error {
	p, ok := f.products[id]
	if !ok {
		return store.ErrNotFound
	}
	for key, value := range set {
		switch key {
		case "name":
			p.Name, _ = value.(string)
		case "price":
			p.Price, _ = value.(float64)
		case "brand":
			p.Brand, _ = value.(string)
		case "imageUrl":
			p.ImageURL, _ = value.(string)
		case "features":
			p.Features, _ = value.([]string)
		}
	}
	return nil
}

func (f *fakeProductRepo) DeleteByID(_ context.Context, id, ownerID bson.ObjectID) error {
	p, ok := f.products[id]
	if !ok || p.UserID != ownerID {
		return store.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

type fakeImageStore struct {
	savedURL string
	deleted  []string
}

func (f *fakeImageStore) Save(_ context.Context, r io.Reader, _, _, _ string) (string, error) {
	io.Copy(io.Discard, r)
	return f.savedURL, nil
}

func (f *fakeImageStore) SaveFromURL(_ context.Context, _, _ string) (string, error) {
	return f.savedURL, nil
}

func (f *fakeImageStore) Delete(_ context.Context, publicURL string) error {
	f.deleted = append(f.deleted, publicURL)
	return nil
}

func newProductsRouter(repo *fakeProductRepo, images *fakeImageStore, userID bson.ObjectID) *gin.Engine {
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)
	ctl := &ProductsController{
		Products:         repo,
		Images:           images,
		Log:              log,
		MaxListLimit:     100,
		DefaultListLimit: 20,
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID.Hex())
		c.Next()
	})
	r.GET("/products", ctl.List())
	r.POST("/products", ctl.Create())
	r.GET("/products/:id", ctl.Get())
	r.PUT("/products/:id", ctl.Update())
	r.DELETE("/products/:id", ctl.Delete())
	r.POST("/products/:id/image", ctl.UploadImage())
	return r
}

func seedProduct(repo *fakeProductRepo, ownerID bson.ObjectID) *models.Product {
	p := &models.Product{
		ID:               bson.NewObjectID(),
		UserID:           ownerID,
		Name:             "Trail Runner Backpack",
		Price:            89.99,
		BasicDescription: "A lightweight backpack for trail running.",
	}
	repo.products[p.ID] = p
	return p
}

func TestCreateProduct(t *testing.T) {
	repo := newFakeProductRepo()
	userID := bson.NewObjectID()
	r := newProductsRouter(repo, &fakeImageStore{}, userID)

	body := `{"name": "  Trail Runner Backpack ", "price": 89.99, "basic_description": "A lightweight backpack."}`
	w := doJSON(r, http.MethodPost, "/products", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Trail Runner Backpack", resp.Name)
	assert.Equal(t, userID, resp.UserID)
	assert.False(t, resp.IsCompleted)

	// Optional lists serialize as empty arrays, not null.
	assert.Contains(t, w.Body.String(), `"features":[]`)
	assert.Contains(t, w.Body.String(), `"tags":[]`)

	require.Len(t, repo.products, 1)
}

func TestCreateProductValidation(t *testing.T) {
	r := newProductsRouter(newFakeProductRepo(), &fakeImageStore{}, bson.NewObjectID())

	// Missing price and description.
	w := doJSON(r, http.MethodPost, "/products", `{"name": "X"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/products", `{"name": "Lamp", "price": -5, "basic_description": "d"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProduct(t *testing.T) {
	repo := newFakeProductRepo()
	userID := bson.NewObjectID()
	p := seedProduct(repo, userID)
	r := newProductsRouter(repo, &fakeImageStore{}, userID)

	w := doJSON(r, http.MethodGet, "/products/"+p.ID.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, p.Name, resp.Name)
}

func TestGetForeignProduct(t *testing.T) {
	repo := newFakeProductRepo()
	p := seedProduct(repo, bson.NewObjectID())
	r := newProductsRouter(repo, &fakeImageStore{}, bson.NewObjectID())

	w := doJSON(r, http.MethodGet, "/products/"+p.ID.Hex(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListProducts(t *testing.T) {
	repo := newFakeProductRepo()
	userID := bson.NewObjectID()
	seedProduct(repo, userID)
	seedProduct(repo, userID)
	seedProduct(repo, bson.NewObjectID()) // someone else's
	r := newProductsRouter(repo, &fakeImageStore{}, userID)

	w := doJSON(r, http.MethodGet, "/products?page=2&limit=500", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["page"])
	assert.Equal(t, float64(100), resp["limit"]) // clamped to the max
	assert.Equal(t, float64(2), resp["total"])

	assert.Equal(t, int64(100), repo.lastSkip)
	assert.Equal(t, int64(100), repo.lastLimit)
}

func TestUpdateProduct(t *testing.T) {
	repo := newFakeProductRepo()
	userID := bson.NewObjectID()
	p := seedProduct(repo, userID)
	r := newProductsRouter(repo, &fakeImageStore{}, userID)

	w := doJSON(r, http.MethodPut, "/products/"+p.ID.Hex(), `{"name": "Renamed Backpack"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Renamed Backpack", resp.Name)
	assert.Equal(t, "Renamed Backpack", repo.products[p.ID].Name)
}

func TestUpdateProductNoFields(t *testing.T) {
	repo := newFakeProductRepo()
	userID := bson.NewObjectID()
	p := seedProduct(repo, userID)
	r := newProductsRouter(repo, &fakeImageStore{}, userID)

	w := doJSON(r, http.MethodPut, "/products/"+p.ID.Hex(), `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateForeignProduct(t *testing.T) {
	repo := newFakeProductRepo()
	p := seedProduct(repo, bson.NewObjectID())
	r := newProductsRouter(repo, &fakeImageStore{}, bson.NewObjectID())

	w := doJSON(r, http.MethodPut, "/products/"+p.ID.Hex(), `{"name": "Hijacked"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Trail Runner Backpack", repo.products[p.ID].Name)
}

func TestDeleteProduct(t *testing.T) {
	repo := newFakeProductRepo()
	userID := bson.NewObjectID()
	p := seedProduct(repo, userID)
	r := newProductsRouter(repo, &fakeImageStore{}, userID)

	w := doJSON(r, http.MethodDelete, "/products/"+p.ID.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.products)

	w = doJSON(r, http.MethodDelete, "/products/"+p.ID.Hex(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadImageReplacesPrevious(t *testing.T) {
	repo := newFakeProductRepo()
	userID := bson.NewObjectID()
	p := seedProduct(repo, userID)
	p.ImageURL = "/uploads/images/old.png"

	images := &fakeImageStore{savedURL: "/uploads/images/new.png"}
	r := newProductsRouter(repo, images, userID)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	part.Write([]byte("fake-png-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/products/"+p.ID.Hex()+"/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/uploads/images/new.png", resp["image_url"])
	assert.Equal(t, []string{"/uploads/images/old.png"}, images.deleted)
	assert.Equal(t, "/uploads/images/new.png", repo.products[p.ID].ImageURL)
}

func TestUploadImageMissingFile(t *testing.T) {
	repo := newFakeProductRepo()
	userID := bson.NewObjectID()
	p := seedProduct(repo, userID)
	r := newProductsRouter(repo, &fakeImageStore{}, userID)

	req := httptest.NewRequest(http.MethodPost, "/products/"+p.ID.Hex()+"/image", strings.NewReader(""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
