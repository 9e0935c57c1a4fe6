package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	OpenRouter string
	Grok       string
}

type AIConfig struct {
	OpenRouterBaseURL string
	GrokBaseURL       string
	PrimaryModel      string
	FallbackModel     string
	Temperature       float64

	EmbeddingProvider string // "openrouter" or "ollama"
	EmbeddingModel    string
	OllamaBaseURL     string
	OllamaModel       string // chat model for local development
	LLMProvider       string // "openrouter", "grok" or "ollama"

	MaxTokensSummary    int
	MaxTokensGeneration int

	SimilarityThresholdChat      float64
	SimilarityThresholdSynthesis float64
	TopKChat                     int
	TopKSynthesis                int

	EmbedWorkers int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "logs/app.log"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenRouter: getEnv("OPENROUTER_API_KEY", ""),
			Grok:       getEnv("GROK_API_KEY", ""),
		},
		Ai: AIConfig{
			OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			GrokBaseURL:       getEnv("GROK_BASE_URL", "https://api.x.ai/v1"),
			PrimaryModel:      getEnv("PRIMARY_AI_MODEL", "anthropic/claude-3.5-sonnet"),
			FallbackModel:     getEnv("FALLBACK_AI_MODEL", "grok-2-latest"),
			Temperature:       getEnvAsFloat("AI_TEMPERATURE", 0.7),

			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openrouter"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "openai/text-embedding-3-small"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_MODEL", "llama3"),
			LLMProvider:       getEnv("LLM_PROVIDER", "openrouter"),

			MaxTokensSummary:    getEnvAsInt("MAX_TOKENS_SUMMARY", 500),
			MaxTokensGeneration: getEnvAsInt("MAX_TOKENS_GENERATION", 3000),

			SimilarityThresholdChat:      getEnvAsFloat("SIMILARITY_THRESHOLD_CHAT", 0.5),
			SimilarityThresholdSynthesis: getEnvAsFloat("SIMILARITY_THRESHOLD_SYNTHESIS", 0.3),
			TopKChat:                     getEnvAsInt("TOP_K_CHAT", 3),
			TopKSynthesis:                getEnvAsInt("TOP_K_SYNTHESIS", 5),

			EmbedWorkers: getEnvAsInt("EMBED_WORKERS", 5),
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
