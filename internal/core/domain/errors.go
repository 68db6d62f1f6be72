package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDocumentParse indicates the source document is malformed or
	// unreadable. Fatal to the ingestion run; not retried.
	ErrDocumentParse = errors.New("document parse failed")

	// ErrEmbeddingService indicates an embedding batch call failed or
	// returned an inconsistent shape. Fatal to the ingestion run; no
	// partial commit is left queryable as current.
	ErrEmbeddingService = errors.New("embedding service failed")

	// ErrIndexCreation indicates a collection already exists with a
	// conflicting vector dimension.
	ErrIndexCreation = errors.New("index creation failed")

	// ErrVectorStoreUnavailable indicates the vector store could not be
	// reached. Fatal per call; retry policy belongs to the caller.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")

	// ErrCollectionNotFound indicates the named collection does not
	// exist. Reset swallows this; query propagates it.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrNoDocumentIngested indicates retrieval was attempted with no
	// prior successful ingestion and no explicit document path.
	ErrNoDocumentIngested = errors.New("no document ingested")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Answer generation is disabled; retrieval still works.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
