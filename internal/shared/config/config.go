package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string

	// Document database (Couch-style HTTP views).
	CouchURL      string
	CouchDatabase string
	CouchUsername string
	CouchPassword string

	// Object storage.
	ObjectStoreType    string
	LocalStoreDir      string
	AWSRegion          string
	StorageAccessPoint string
	StorageProjectID   string

	// Processing pipeline.
	PipelineDispatch string
	PipelineURL      string
	PipelineToken    string
	PipelineQueueURL string

	// Downstream call budget for storage and database boundaries.
	CallTimeout time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	couchURL := os.Getenv("COUCH_URL")

	if env == "production" && couchURL == "" {
		log.Printf("COUCH_URL is required in production")
	}

	return Config{
		Port:               getEnv("PORT", "8080"),
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:                env,
		CouchURL:           couchURL,
		CouchDatabase:      getEnv("COUCH_DATABASE", "photos"),
		CouchUsername:      getEnv("COUCH_USERNAME", ""),
		CouchPassword:      getEnv("COUCH_PASSWORD", ""),
		ObjectStoreType:    normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:      getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:          getEnv("AWS_REGION", ""),
		StorageAccessPoint: getEnv("STORAGE_ACCESS_POINT", "dal.objectstorage.example.com"),
		StorageProjectID:   getEnv("STORAGE_PROJECT_ID", ""),
		PipelineDispatch:   normalizeDispatchType(getEnv("PIPELINE_DISPATCH", "")),
		PipelineURL:        getEnv("PIPELINE_URL", ""),
		PipelineToken:      getEnv("PIPELINE_TOKEN", ""),
		PipelineQueueURL:   getEnv("PIPELINE_QUEUE_URL", ""),
		CallTimeout:        getDuration("CALL_TIMEOUT_SECONDS", 15*time.Second),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:      getEnv("UI_REDIRECT_URL", ""),
	}
}

// PublicBase returns the public object-storage URL prefix for this deployment.
func (c Config) PublicBase() string {
	return "https://" + c.StorageAccessPoint + "/v1/AUTH_" + c.StorageProjectID
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return def
	}
	return time.Duration(secs) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeDispatchType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "http":
		return "http"
	case "sqs":
		return "sqs"
	default:
		return ""
	}
}
