package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	AppEnv     string
	LogLevel   string
	ServerPort string

	JwtSecret string
	Issuer    string

	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	DbSSLMode  string

	CorsOrigins []string

	// StorageBackend selects where uploaded attachments live: "minio" or "local".
	StorageBackend string
	UploadDir      string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	SmtpHost     string
	SmtpPort     int
	SmtpUser     string
	SmtpPassword string
	SmtpFrom     string

	ReconcileSchedule  string
	AuditRetentionDays int
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppEnv = getEnv("APP_ENV", "production")
	LogLevel = getEnv("LOG_LEVEL", "info")
	ServerPort = getEnv("SERVER_PORT", "8080")

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("ISSUER", "tls-platform")

	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "tls")
	DbSSLMode = getEnv("DB_SSLMODE", "disable")

	CorsOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"))

	StorageBackend = getEnv("STORAGE_BACKEND", "local")
	UploadDir = getEnv("UPLOAD_DIR", "./uploads")
	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "tls-uploads")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))

	SmtpHost = getEnv("SMTP_HOST", "")
	SmtpPort, _ = strconv.Atoi(getEnv("SMTP_PORT", "587"))
	SmtpUser = getEnv("SMTP_USER", "")
	SmtpPassword = getEnv("SMTP_PASSWORD", "")
	SmtpFrom = getEnv("SMTP_FROM", "noreply@tamilsociety.org")

	ReconcileSchedule = getEnv("RECONCILE_SCHEDULE", "@every 1h")
	AuditRetentionDays, err = strconv.Atoi(getEnv("AUDIT_RETENTION_DAYS", "90"))
	if err != nil || AuditRetentionDays <= 0 {
		AuditRetentionDays = 90
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
