package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/selorm/prodscribe/config"
	"github.com/selorm/prodscribe/content"
	"github.com/selorm/prodscribe/controllers"
	"github.com/selorm/prodscribe/database"
	"github.com/selorm/prodscribe/genai"
	"github.com/selorm/prodscribe/middleware"
	"github.com/selorm/prodscribe/storage"
	"github.com/selorm/prodscribe/store"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log := logrus.StandardLogger()
	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx := context.Background()
	database.Connect(cfg.MongoURI)
	usersCol := database.OpenCollection(cfg.DatabaseName, "users")
	productsCol := database.OpenCollection(cfg.DatabaseName, "products")
	if err := store.EnsureIndexes(ctx, usersCol, productsCol); err != nil {
		log.WithError(err).Fatal("failed to create indexes")
	}

	userStore := store.NewUserStore(usersCol)
	productStore := store.NewProductStore(productsCol)

	httpClient := genai.NewHTTPClient(cfg.HTTPTimeout)
	genClient := genai.New(genai.Options{
		APIKey:     cfg.OpenAIAPIKey,
		BaseURL:    cfg.OpenAIBaseURL,
		TextModel:  cfg.TextModel,
		ImageModel: cfg.ImageModel,
		HTTPClient: httpClient,
	})

	var images storage.Store
	if cfg.IsProduction() {
		gcsStore, err := storage.NewGCSStore(ctx, cfg.GCSBucket, cfg.CredentialsFilePath, httpClient)
		if err != nil {
			log.WithError(err).Fatal("failed to create GCS store")
		}
		images = gcsStore
	} else {
		localStore, err := storage.NewLocalStore(cfg.UploadDir, "/uploads/images", httpClient)
		if err != nil {
			log.WithError(err).Fatal("failed to create local image store")
		}
		images = localStore
	}

	generator := content.NewGenerator(genClient, productStore, images, log)

	authCtl := &controllers.AuthController{
		Users:      userStore,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
		Log:        log,
	}
	productsCtl := &controllers.ProductsController{
		Products:         productStore,
		Images:           images,
		Log:              log,
		MaxListLimit:     cfg.MaxListLimit,
		DefaultListLimit: cfg.DefaultListLimit,
	}
	contentCtl := &controllers.ContentController{
		Generator: generator,
		Log:       log,
	}

	r := gin.New()

	allowedOrigins := map[string]bool{}
	for _, origin := range cfg.AllowedOrigins {
		allowedOrigins[origin] = true
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	if !cfg.IsProduction() {
		r.Static("/uploads/images", cfg.UploadDir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	api.POST("/auth/register", authCtl.Register())
	api.POST("/auth/login", authCtl.Login())
	api.POST("/auth/refresh", authCtl.Refresh())

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("/auth/logout", authCtl.Logout())
		authed.GET("/auth/me", authCtl.Me())

		authed.GET("/products", productsCtl.List())
		authed.POST("/products", productsCtl.Create())
		authed.GET("/products/:id", productsCtl.Get())
		authed.PUT("/products/:id", productsCtl.Update())
		authed.DELETE("/products/:id", productsCtl.Delete())
		authed.POST("/products/:id/image", productsCtl.UploadImage())

		authed.POST("/content/generate/:id", contentCtl.GenerateAll())
		authed.POST("/content/generate/:id/field/:field", contentCtl.GenerateField())
		authed.POST("/content/complete/:id", contentCtl.CompleteMissing())
	}

	log.WithField("port", cfg.Port).Info("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
