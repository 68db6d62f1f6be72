package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driving"
	"github.com/docsift-labs/docsift-cli/internal/logger"
)

// DefaultTopK is the default number of results a retrieval returns.
const DefaultTopK = 5

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalService turns a free-text query into a ranked set of
// supporting passages from the current document, and optionally into
// a model-generated answer conditioned on them.
type RetrievalService struct {
	batcher *Batcher
	index   *IndexManager
	state   driven.StateStore
	llm     driven.LLMService  // optional, nil disables Ask
	prompts driven.PromptStore // optional, overrides the built-in ask prompt
}

// NewRetrievalService creates a retrieval pipeline. llm may be nil.
func NewRetrievalService(
	batcher *Batcher,
	index *IndexManager,
	state driven.StateStore,
	llm driven.LLMService,
) *RetrievalService {
	return &RetrievalService{
		batcher: batcher,
		index:   index,
		state:   state,
		llm:     llm,
	}
}

// defaultAskSystemPrompt is used when no PromptStore is configured.
const defaultAskSystemPrompt = "You answer questions using only the provided document passages. " +
	"If the passages do not contain the answer, say so."

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses the hardcoded default prompt.
func (s *RetrievalService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// Retrieve embeds the query and returns the topK most similar chunks
// in descending score order. A blank query returns an empty result
// without invoking the embedding service. "Nothing found" is an empty
// slice, never an error.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, opts driving.RetrieveOptions) ([]domain.RetrievedChunk, error) {
	logger.Section("Retrieval")

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.RetrievedChunk{}, nil
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	logger.Debug("Query: %q, topK: %d", query, topK)

	if _, err := s.resolveDocument(ctx, opts.FilePath); err != nil {
		return nil, err
	}

	vectors, err := s.batcher.EmbedAll(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("%w: expected 1 query vector, got %d", domain.ErrEmbeddingService, len(vectors))
	}

	hits, err := s.index.Query(ctx, vectors[0], topK)
	if err != nil {
		return nil, err
	}
	logger.Debug("Index returned %d hits", len(hits))

	results := make([]domain.RetrievedChunk, len(hits))
	for i, hit := range hits {
		results[i] = domain.RetrievedChunk{
			Text:     hit.Metadata.Text,
			Score:    hit.Score,
			Metadata: hit.Metadata,
		}
	}
	return results, nil
}

// Ask retrieves supporting passages for the question and asks the
// configured language model to answer from them alone.
func (s *RetrievalService) Ask(ctx context.Context, question string, opts driving.RetrieveOptions) (string, []domain.RetrievedChunk, error) {
	if s.llm == nil {
		return "", nil, domain.ErrLLMUnavailable
	}

	results, err := s.Retrieve(ctx, question, opts)
	if err != nil {
		return "", nil, err
	}
	if len(results) == 0 {
		return "No relevant passages were found in the current document.", results, nil
	}

	var passages strings.Builder
	for i, r := range results {
		fmt.Fprintf(&passages, "[%d] %s\n\n", i+1, r.Text)
	}

	messages := []driven.ChatMessage{
		{
			Role:    "system",
			Content: s.askSystemPrompt(),
		},
		{
			Role:    "user",
			Content: fmt.Sprintf("Passages:\n\n%sQuestion: %s", passages.String(), question),
		},
	}

	answer, err := s.llm.Chat(ctx, messages, driven.ChatOptions{MaxTokens: 1024, Temperature: 0.2})
	if err != nil {
		return "", nil, fmt.Errorf("generating answer: %w", err)
	}
	return answer, results, nil
}

// askSystemPrompt loads the ask prompt, falling back to the default.
func (s *RetrievalService) askSystemPrompt() string {
	if s.prompts == nil {
		return defaultAskSystemPrompt
	}
	prompt, err := s.prompts.Load(driven.PromptAskSystem)
	if err != nil || prompt == "" {
		return defaultAskSystemPrompt
	}
	return prompt
}

// resolveDocument resolves the effective document reference: the
// explicit path when given, otherwise the last successfully ingested
// document.
func (s *RetrievalService) resolveDocument(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	last, err := s.state.Last(ctx)
	if err != nil {
		return "", fmt.Errorf("reading ingest state: %w", err)
	}
	if last == nil || last.Path == "" {
		return "", domain.ErrNoDocumentIngested
	}
	logger.Debug("Using last ingested document: %s", last.Path)
	return last.Path, nil
}
