package file

import (
	"os"

	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
)

// Provider names accepted in configuration.
const (
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
	ProviderAnthropic = "anthropic"
	ProviderQdrant    = "qdrant"
	ProviderChromem   = "chromem"
	ProviderMemory    = "memory"
)

// Settings is the typed view of the docsift configuration file.
// API keys and connection URLs come from the environment when set,
// falling back to the config file; they are never baked into code.
type Settings struct {
	// Embedding service selection.
	EmbeddingProvider  string
	EmbeddingModel     string
	EmbeddingBaseURL   string
	EmbeddingBatchSize int

	// Vector store selection.
	VectorProvider string
	Collection     string
	QdrantURL      string
	QdrantAPIKey   string

	// LLM selection; empty provider disables the ask feature.
	LLMProvider string
	LLMModel    string
	LLMBaseURL  string

	// Chunking defaults; CLI flags override these per run.
	ChunkStrategy string
	ChunkSize     int
	ChunkOverlap  int

	// Secrets, resolved from env first.
	OpenAIAPIKey    string
	AnthropicAPIKey string
}

// LoadSettings builds typed settings from the config store plus
// environment overrides.
func LoadSettings(store driven.ConfigStore) Settings {
	s := Settings{
		EmbeddingProvider:  store.GetString("embedding.provider"),
		EmbeddingModel:     store.GetString("embedding.model"),
		EmbeddingBaseURL:   store.GetString("embedding.base_url"),
		EmbeddingBatchSize: store.GetInt("embedding.batch_size"),

		VectorProvider: store.GetString("vector.provider"),
		Collection:     store.GetString("vector.collection"),
		QdrantURL:      store.GetString("qdrant.url"),
		QdrantAPIKey:   store.GetString("qdrant.api_key"),

		LLMProvider: store.GetString("llm.provider"),
		LLMModel:    store.GetString("llm.model"),
		LLMBaseURL:  store.GetString("llm.base_url"),

		ChunkStrategy: store.GetString("chunking.strategy"),
		ChunkSize:     store.GetInt("chunking.size"),
		ChunkOverlap:  store.GetInt("chunking.overlap"),

		OpenAIAPIKey:    store.GetString("openai.api_key"),
		AnthropicAPIKey: store.GetString("anthropic.api_key"),
	}

	// Environment wins over the config file.
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		s.OpenAIAPIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		s.AnthropicAPIKey = v
	}
	if v := os.Getenv("QDRANT_URL"); v != "" {
		s.QdrantURL = v
	}
	if v := os.Getenv("QDRANT_API_KEY"); v != "" {
		s.QdrantAPIKey = v
	}
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		if s.EmbeddingProvider == ProviderOllama {
			s.EmbeddingBaseURL = v
		}
		if s.LLMProvider == ProviderOllama {
			s.LLMBaseURL = v
		}
	}

	// Defaults for anything still unset.
	if s.EmbeddingProvider == "" {
		s.EmbeddingProvider = ProviderOpenAI
	}
	if s.VectorProvider == "" {
		s.VectorProvider = ProviderChromem
	}
	if s.Collection == "" {
		s.Collection = "docs"
	}

	return s
}
