package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
	DBDriverLibSQL   = "libsql"
)

type Config struct {
	ServerPort      string
	Environment     string
	LogLevel        string
	DefaultLanguage string
	// Database
	DBDriver         string
	DBPath           string
	DatabaseURL      string
	TursoDatabaseURL string
	TursoAuthToken   string
	DBMaxOpenConns   int
	DBMaxIdleConns   int
	// Secret key file used to sign flash cookies
	SecretKeyFile string
	// Exports
	ChromePath string
	ExportDir  string
	// Exports per minute and client IP; zero disables the limit
	ExportRateLimit int
	// Cloudflare R2 (S3 API) export archive
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged instead of sent
	// Unbilled digest job
	DigestSchedule   string
	DigestRecipients []string
	DigestTimezone   string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "5000"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DefaultLanguage:   getEnv("DEFAULT_LANGUAGE", "hu"),
		DBDriver:          strings.ToLower(getEnv("DB_DRIVER", DBDriverSQLite)),
		DBPath:            getEnv("DB_PATH", "db/lexium.db"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		TursoDatabaseURL:  getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:    getEnv("TURSO_AUTH_TOKEN", ""),
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		SecretKeyFile:     getEnv("SECRET_KEY_FILE", "secret.key"),
		ChromePath:        getEnv("CHROME_PATH", ""),
		ExportDir:         getEnv("EXPORT_DIR", "static/exports"),
		ExportRateLimit:   getEnvInt("EXPORT_RATE_LIMIT", 20),
		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),
		ResendAPIKey:      getEnv("RESEND_API_KEY", ""),
		EmailFrom:         getEnv("EMAIL_FROM", "iroda@lexium.local"),
		EmailFromName:     getEnv("EMAIL_FROM_NAME", "Lexium"),
		EmailTestMode:     getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		DigestSchedule:    getEnv("DIGEST_SCHEDULE", ""),
		DigestRecipients:  splitList(getEnv("DIGEST_RECIPIENTS", "")),
		DigestTimezone:    getEnv("DIGEST_TIMEZONE", "Europe/Budapest"),
	}

	if err := cfg.Validate(); err != nil {
		if cfg.IsProduction() {
			log.Fatalf("[CRITICAL] Invalid configuration: %v", err)
		}
		log.Printf("[WARNING] Invalid configuration: %v", err)
	}

	return cfg
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// R2Configured reports whether every R2 credential needed for the export archive is present
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s (%q), using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
