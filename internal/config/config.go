package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	AuthModeFirebase = "firebase"
	AuthModeLocal    = "local"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Firebase FirebaseConfig
	MinIO    MinIOConfig
	CORS     CORSConfig
	Upload   UploadConfig
}

type AppConfig struct {
	Env  string
	Port string
}

// Production reports whether the app runs in production mode
func (a AppConfig) Production() bool {
	return a.Env == "production"
}

type DBConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	ConnMaxIdle  time.Duration
}

// DSN returns the PostgreSQL connection string
func (d DBConfig) DSN() string {
	return "host=" + d.Host +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" port=" + d.Port +
		" sslmode=" + d.SSLMode +
		" TimeZone=UTC"
}

// URL returns the PostgreSQL connection URL (for golang-migrate)
func (d DBConfig) URL() string {
	return "postgres://" + d.User + ":" + d.Password +
		"@" + d.Host + ":" + d.Port +
		"/" + d.Name + "?sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Addr returns the Redis address
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// AuthConfig selects how bearer tokens are verified. In local mode tokens
// are HS256 JWTs signed with JWTSecret, as issued by the seeder.
type AuthConfig struct {
	Mode      string
	JWTSecret string
	JWTExpiry time.Duration
}

type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
	ChatCollection  string
}

// Enabled reports whether Firebase credentials are configured
func (f FirebaseConfig) Enabled() bool {
	return f.CredentialsPath != "" || f.ProjectID != ""
}

type MinIOConfig struct {
	Endpoint  string
	PublicURL string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type CORSConfig struct {
	Origins []string
}

type UploadConfig struct {
	MaxBytes int64
}

// Load reads configuration from .env file and environment variables. It
// reports whether a .env file was found.
func Load() (*Config, bool) {
	// Load .env file (ignore error if not exists - e.g. in Docker)
	envFile := godotenv.Load() == nil

	firebase := FirebaseConfig{
		CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		ChatCollection:  getEnv("FIRESTORE_CHAT_COLLECTION", "chats"),
	}
	authMode := strings.ToLower(strings.TrimSpace(getEnv("AUTH_MODE", "")))
	if authMode == "" {
		authMode = AuthModeLocal
		if firebase.Enabled() {
			authMode = AuthModeFirebase
		}
	}

	return &Config{
		App: AppConfig{
			Env:  getEnv("APP_ENV", "development"),
			Port: getEnv("APP_PORT", "8080"),
		},
		DB: DBConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "travelmate"),
			Password:     getEnv("DB_PASSWORD", "travelmate"),
			Name:         getEnv("DB_NAME", "travelmate"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 5),
			MaxIdleConns: getInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxIdle:  getDuration("DB_CONN_MAX_IDLE", 10*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Auth: AuthConfig{
			Mode:      authMode,
			JWTSecret: getEnv("JWT_SECRET", "default-secret"),
			JWTExpiry: getDuration("JWT_EXPIRY", 24*time.Hour),
		},
		Firebase: firebase,
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "travelmate-media"),
			UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		},
		CORS: CORSConfig{
			Origins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		},
		Upload: UploadConfig{
			MaxBytes: int64(getInt("UPLOAD_MAX_BYTES", 10<<20)),
		},
	}, envFile
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
