package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Pipeline PipelineConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	PipelineLogPath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
}

type DatabaseConfig struct {
	// Connection is the caller-scoped DSN used for reads.
	Connection string
	// ServiceConnection is the service-role DSN used for cache population and audit writes.
	ServiceConnection string
}

type APIKeys struct {
	OpenAI         string
	GoogleMaps     string
	GoogleSearch   string
	GoogleSearchCx string
	Geoapify       string
	GoogleGemini   string
	Jina           string
	IngestTopic    string // Document ingestion topic
}

type AIConfig struct {
	EmbeddingProvider string // "openai", "gemini", "ollama" or "jina"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "openai" or "ollama"
	LLMModel          string // standard completion model
	LLMPremiumModel   string // used for high-value queries
}

type PipelineConfig struct {
	CacheBackend       string // "postgres", "redis" or "memory"
	StoreBackend       string // "postgres" or "memory", for the audit log and global knowledge index
	KnowledgeSeedFiles []string
	Geocoder           string // "google" or "geoapify"
	SearchRadiusMeters int
	ProviderRateLimit  float64 // requests per second per paid provider, 0 disables pacing
	TrustedDomains     []string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	dsn := getEnv("DB_CONNECTION_STRING", "")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			PipelineLogPath:    getEnv("PIPELINE_LOG_PATH", "logs/pipeline.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection:        dsn,
			ServiceConnection: getEnv("DB_SERVICE_CONNECTION_STRING", dsn),
		},
		Keys: APIKeys{
			OpenAI:         getEnv("OPENAI_API_KEY", ""),
			GoogleMaps:     getEnv("GOOGLE_MAPS_API_KEY", ""),
			GoogleSearch:   getEnv("GOOGLE_SEARCH_API_KEY", ""),
			GoogleSearchCx: getEnv("GOOGLE_SEARCH_ENGINE_ID", ""),
			Geoapify:       getEnv("GEOAPIFY_API_KEY", ""),
			GoogleGemini:   getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Jina:           getEnv("JINA_API_KEY", ""),
			IngestTopic:    getEnv("INGEST_DOCUMENT_TOPIC_NAME", "INGEST_USER_DOCUMENT"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
			LLMPremiumModel:   getEnv("LLM_PREMIUM_MODEL", "gpt-4o"),
		},
		Pipeline: PipelineConfig{
			CacheBackend:       getEnv("LOOKUP_CACHE_BACKEND", "postgres"),
			StoreBackend:       getEnv("ADVISOR_STORE_BACKEND", "postgres"),
			KnowledgeSeedFiles: getEnvAsList("KNOWLEDGE_SEED_FILES", nil),
			Geocoder:           getEnv("GEOCODER_PROVIDER", "google"),
			SearchRadiusMeters: getEnvAsInt("SEARCH_RADIUS_METERS", 16093),
			ProviderRateLimit:  getEnvAsFloat("PROVIDER_RATE_LIMIT", 5),
			TrustedDomains: getEnvAsList("WEB_SEARCH_TRUSTED_DOMAINS",
				[]string{"sba.gov", "irs.gov", "osha.gov", "bls.gov", "census.gov"}),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	var values []string
	for _, v := range strings.Split(strValue, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
