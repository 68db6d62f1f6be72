// Package ai provides factory functions for creating AI and vector
// store adapters from configuration.
package ai

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/docsift-labs/docsift-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/docsift-labs/docsift-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/docsift-labs/docsift-cli/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/docsift-labs/docsift-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/docsift-labs/docsift-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/docsift-labs/docsift-cli/internal/adapters/driven/llm/openai"
	chromemstore "github.com/docsift-labs/docsift-cli/internal/adapters/driven/vectorstore/chromem"
	memorystore "github.com/docsift-labs/docsift-cli/internal/adapters/driven/vectorstore/memory"
	qdrantstore "github.com/docsift-labs/docsift-cli/internal/adapters/driven/vectorstore/qdrant"
	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the configured embedding service.
func CreateEmbeddingService(settings file.Settings) (driven.EmbeddingService, error) {
	switch settings.EmbeddingProvider {
	case file.ProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:      settings.EmbeddingBaseURL,
			Model:        settings.EmbeddingModel,
			MaxBatchSize: settings.EmbeddingBatchSize,
		}), nil

	case file.ProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:       settings.OpenAIAPIKey,
			BaseURL:      settings.EmbeddingBaseURL,
			Model:        settings.EmbeddingModel,
			MaxBatchSize: settings.EmbeddingBatchSize,
		})

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.EmbeddingProvider)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and
// validates connectivity before returning it.
func CreateAndValidateEmbeddingService(settings file.Settings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %v. Check 'docsift status' and your config", domain.ErrEmbeddingService, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%v)", domain.ErrEmbeddingService, err)
	}

	return svc, nil
}

// CreateLLMService creates the configured LLM service.
// Returns (nil, nil) when no provider is configured; the ask feature
// is simply disabled in that case.
func CreateLLMService(settings file.Settings) (driven.LLMService, error) {
	switch settings.LLMProvider {
	case "":
		return nil, nil

	case file.ProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.LLMBaseURL,
			Model:   settings.LLMModel,
		}), nil

	case file.ProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.OpenAIAPIKey,
			BaseURL: settings.LLMBaseURL,
			Model:   settings.LLMModel,
		})

	case file.ProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.AnthropicAPIKey,
			BaseURL: settings.LLMBaseURL,
			Model:   settings.LLMModel,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.LLMProvider)
	}
}

// CreateVectorStore creates the configured vector store. The chromem
// store persists under dataDir; qdrant connects to a running instance.
func CreateVectorStore(settings file.Settings, dataDir string) (driven.VectorStore, error) {
	switch settings.VectorProvider {
	case file.ProviderChromem:
		if dataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("getting home directory: %w", err)
			}
			dataDir = filepath.Join(home, ".docsift", "data")
		}
		return chromemstore.NewStore(filepath.Join(dataDir, "vectors"))

	case file.ProviderQdrant:
		return qdrantstore.NewStore(qdrantstore.Config{
			URL:    settings.QdrantURL,
			APIKey: settings.QdrantAPIKey,
		})

	case file.ProviderMemory:
		return memorystore.NewStore(), nil

	default:
		return nil, fmt.Errorf("unsupported vector store provider: %s", settings.VectorProvider)
	}
}
