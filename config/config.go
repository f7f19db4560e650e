package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Backend names accepted by the *_BACKEND variables.
const (
	StoreBackendFile  = "file"
	StoreBackendMySQL = "mysql"

	BlobBackendLocal = "local"
	BlobBackendMinio = "minio"

	PanicBackendMemory = "memory"
	PanicBackendRedis  = "redis"
)

// Config stores the application configuration.
type Config struct {
	Port         string
	DataFile     string // JSON document used by the file store backend
	DataWatch    bool   // reload the document when DataFile changes on disk
	UploadDir    string // flat directory for song_* and panic_* clips
	StaticDir    string // UI shell and its assets
	MaxUploadMB  int64
	StoreBackend string
	BlobBackend  string
	PanicBackend string

	// MySQL, used when StoreBackend is "mysql"
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// MinIO, used when BlobBackend is "minio"
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioRegion    string

	// Redis, used when PanicBackend is "redis"
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	PanicKey      string

	LogLevel      string
	LogFile       string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
	LogCompress   bool
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load does not override variables that are already set.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on existing environment variables and defaults.")
	}

	return &Config{
		Port:         getEnv("PORT", "5000"),
		DataFile:     getEnv("DATA_FILE", "data.json"),
		DataWatch:    getEnvBool("DATA_WATCH", true),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		StaticDir:    getEnv("STATIC_DIR", "static"),
		MaxUploadMB:  int64(getEnvInt("MAX_UPLOAD_MB", 50)),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", StoreBackendFile)),
		BlobBackend:  strings.ToLower(getEnv("BLOB_BACKEND", BlobBackendLocal)),
		PanicBackend: strings.ToLower(getEnv("PANIC_BACKEND", PanicBackendMemory)),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "bellsync"),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "127.0.0.1:9000"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "bellsync"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		MinioRegion:    getEnv("MINIO_REGION", "us-east-1"),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		PanicKey:      getEnv("PANIC_KEY", "bellsync:panic"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSize:    getEnvInt("LOG_MAX_SIZE", 50),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAge:     getEnvInt("LOG_MAX_AGE", 30),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// Validate rejects backend names the server does not know how to build.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreBackendFile, StoreBackendMySQL:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.BlobBackend {
	case BlobBackendLocal, BlobBackendMinio:
	default:
		return fmt.Errorf("unknown BLOB_BACKEND %q", c.BlobBackend)
	}
	switch c.PanicBackend {
	case PanicBackendMemory, PanicBackendRedis:
	default:
		return fmt.Errorf("unknown PANIC_BACKEND %q", c.PanicBackend)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// MaxUploadBytes is the multipart body limit.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
