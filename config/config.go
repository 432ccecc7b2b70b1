package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port         string
	Environment  string
	MongoURI     string
	DatabaseName string

	AllowedOrigins []string

	JWTSecret        string
	JWTRefreshSecret string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration

	OpenAIAPIKey  string
	OpenAIBaseURL string
	TextModel     string
	ImageModel    string
	HTTPTimeout   time.Duration

	UploadDir           string
	GCSBucket           string
	CredentialsFilePath string

	MaxListLimit     int
	DefaultListLimit int
}

func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      strings.ToLower(getEnv("ENVIRONMENT", "development")),
		MongoURI:         getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName:     getEnv("DATABASE_NAME", "prodscribe"),
		JWTSecret:        strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTRefreshSecret: strings.TrimSpace(os.Getenv("JWT_REFRESH_SECRET")),
		AccessTTL:        time.Duration(getEnvInt("ACCESS_TOKEN_TTL_MINUTES", 30)) * time.Minute,
		RefreshTTL:       time.Duration(getEnvInt("REFRESH_TOKEN_TTL_DAYS", 7)) * 24 * time.Hour,
		OpenAIAPIKey:     strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		TextModel:        getEnv("OPENAI_TEXT_MODEL", "gpt-4-turbo-preview"),
		ImageModel:       getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
		HTTPTimeout:      time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 90)) * time.Second,
		UploadDir:        getEnv("UPLOAD_DIR", "uploads/images"),
		GCSBucket:        strings.TrimSpace(os.Getenv("GCS_BUCKET")),

		CredentialsFilePath: strings.TrimSpace(os.Getenv("CREDENTIALS_FILE_LOCATION")),
		MaxListLimit:        getEnvInt("READ_QUERY_MAX_LIMIT", 100),
		DefaultListLimit:    getEnvInt("DEFAULT_READ_QUERY_LIMIT", 20),
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	switch {
	case cfg.JWTSecret == "":
		return Config{}, errors.New("JWT_SECRET is required")
	case cfg.JWTRefreshSecret == "":
		return Config{}, errors.New("JWT_REFRESH_SECRET is required")
	case cfg.OpenAIAPIKey == "":
		return Config{}, errors.New("OPENAI_API_KEY is required")
	}

	if cfg.Environment == "production" && cfg.GCSBucket == "" {
		return Config{}, errors.New("GCS_BUCKET is required in production")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
