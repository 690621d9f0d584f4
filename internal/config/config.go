package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

type Config struct {
	HTTPPort      string
	StorageDriver string // "local" or "s3"
	UploadDir     string

	MongoURI string
	MongoDB  string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	NATSURL      string
	RedisAddress string

	JWTSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPEmail    string
	SMTPPassword string
	AdminEmail   string

	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	// Missing .env is fine; environment variables are the primary source.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on environment variables")
	}

	minioUseSSLStr := getEnv("MINIO_USE_SSL", "false")
	minioUseSSL, err := strconv.ParseBool(minioUseSSLStr)
	if err != nil {
		log.Printf("Warning: Invalid MINIO_USE_SSL value '%s', defaulting to false. Error: %v", minioUseSSLStr, err)
		minioUseSSL = false
	}

	smtpPortStr := getEnv("SMTP_PORT", "587")
	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		log.Printf("Warning: Invalid SMTP_PORT value '%s', defaulting to 587. Error: %v", smtpPortStr, err)
		smtpPort = 587
	}

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "5000"),
		StorageDriver:  getEnv("STORAGE_DRIVER", StorageDriverLocal),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "real_estate"),
		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "property-images"),
		MinIOUseSSL:    minioUseSSL,
		NATSURL:        getEnv("NATS_URL", "nats://localhost:4222"),
		RedisAddress:   getEnv("REDIS_ADDRESS", "localhost:6379"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       smtpPort,
		SMTPEmail:      getEnv("SMTP_EMAIL", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),
	}

	origins := getEnv("CORS_ALLOWED_ORIGINS", "*")
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.JWTSecret == "" {
		log.Fatal("FATAL: JWT_SECRET is not set. This is required for security.")
	}
	if cfg.StorageDriver != StorageDriverLocal && cfg.StorageDriver != StorageDriverS3 {
		log.Fatalf("FATAL: unknown STORAGE_DRIVER %q, expected %q or %q", cfg.StorageDriver, StorageDriverLocal, StorageDriverS3)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
