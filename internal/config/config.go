package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Features FeatureFlags
	Llm      LLMTunables
	Vector   VectorConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	IndexTopic         string // watermill topic for async re-embedding
	TrafficOrigin      string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	OpenAI         string
	HuggingFace    string
	Deepgram       string
	GoogleCloud    string
	GoogleMaps     string
	SpeechToText   string
	TextToSpeech   string
	LanguageDetect string
}

type AIConfig struct {
	EmbeddingProvider string // "openai" or "ollama"
	EmbeddingModel    string
	OllamaBaseURL     string
	LLMProvider       string // "openai", "huggingface" or "ollama"
	LLMBaseURL        string
	SpeechProvider    string // "openai" or "deepgram"
	CapabilityTimeout time.Duration
}

type FeatureFlags struct {
	LLMResponses     bool
	VectorEmbeddings bool
	VectorStore      string // "redis" or "pgvector"
}

// LLMTunables are kept raw; pkg/llm clamps them.
type LLMTunables struct {
	Model       string
	Temperature string
	MaxTokens   string
}

type VectorConfig struct {
	Limit         int
	MinSimilarity float64
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	openAIKey := getEnv("OPENAI_API_KEY", "")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3001"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/agent.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			IndexTopic:         getEnv("INDEX_ARTICLE_TOPIC_NAME", "INDEX_KNOWLEDGE_ARTICLE"),
			TrafficOrigin:      getEnv("TRAFFIC_DEFAULT_ORIGIN", "current location"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenAI:         openAIKey,
			HuggingFace:    getEnv("HUGGINGFACE_API_KEY", ""),
			Deepgram:       getEnv("DEEPGRAM_API_KEY", ""),
			GoogleCloud:    getEnv("GOOGLE_CLOUD_API_KEY", ""),
			GoogleMaps:     getEnv("GOOGLE_MAPS_API_KEY", ""),
			SpeechToText:   getEnv("STT_API_KEY", openAIKey),
			TextToSpeech:   getEnv("TTS_API_KEY", openAIKey),
			LanguageDetect: getEnv("LANGUAGE_DETECTION_API_KEY", openAIKey),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			SpeechProvider:    getEnv("SPEECH_PROVIDER", "openai"),
			CapabilityTimeout: time.Duration(getEnvAsInt("CAPABILITY_TIMEOUT_MS", 15000)) * time.Millisecond,
		},
		Features: FeatureFlags{
			LLMResponses:     getEnvAsBool("ENABLE_LLM_RESPONSES"),
			VectorEmbeddings: getEnvAsBool("ENABLE_VECTOR_EMBEDDINGS"),
			VectorStore:      getEnv("VECTOR_STORE", "redis"),
		},
		Llm: LLMTunables{
			Model:       getEnv("LLM_MODEL", ""),
			Temperature: getEnv("LLM_TEMPERATURE", ""),
			MaxTokens:   getEnv("LLM_MAX_TOKENS", ""),
		},
		Vector: VectorConfig{
			Limit:         getEnvAsInt("VECTOR_SEARCH_LIMIT", 5),
			MinSimilarity: getEnvAsFloat("VECTOR_MIN_SIMILARITY", 0.7),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED"),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "civic-voice-backend"),
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

// getEnvAsBool treats only the literal "true" as enabled. Anything else,
// including a missing variable, leaves the feature off.
func getEnvAsBool(key string) bool {
	return strings.TrimSpace(getEnv(key, "")) == "true"
}
