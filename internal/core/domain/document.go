package domain

import "time"

// Chunk is a contiguous span of source text, the unit of embedding
// and retrieval. Chunks are immutable once produced by a chunker.
type Chunk struct {
	// Text is the chunk content with surrounding whitespace trimmed.
	Text string

	// Index is the zero-based position within the document.
	Index int
}

// ChunkMetadata is the fixed-field payload stored with every vector.
// Optional fields default to the empty string. Modelling this as a
// struct rather than an open map keeps index/query round-trips
// type-safe.
type ChunkMetadata struct {
	// Text is the full chunk text. Always populated at ingestion time,
	// so query results never need a placeholder.
	Text string

	// Title is the document title, if one was supplied.
	Title string

	// FileName is the base name of the ingested file.
	FileName string

	// Author is the document author, if one was supplied.
	Author string

	// Description is a free-text description, if one was supplied.
	Description string

	// ChunkIndex is the zero-based position of the chunk.
	ChunkIndex int

	// TotalChunks is the number of chunks the document produced.
	TotalChunks int

	// Source is the original file path the document was ingested from.
	Source string
}

// IndexRecord is an (id, vector, metadata) triple persisted in the
// vector collection. IDs are opaque, generated fresh at upsert time,
// and never derived from content: re-ingesting identical text yields
// different ids. Records are never updated in place, only deleted via
// collection reset and recreated.
type IndexRecord struct {
	// ID is a globally unique opaque identifier.
	ID string

	// Vector is the embedding, matching the collection dimension.
	Vector []float32

	// Metadata is the fixed-field payload.
	Metadata ChunkMetadata
}

// RetrievedChunk is a single ranked retrieval result.
type RetrievedChunk struct {
	// Text is the chunk text, taken from stored metadata.
	Text string

	// Score is the similarity score, higher is more relevant.
	Score float64

	// Metadata is the full stored payload for the chunk.
	Metadata ChunkMetadata
}

// IngestState is the durable record of the most recent successful
// ingestion. It is written only after the last upsert of a run
// succeeds, so callers never observe a half-ingested document as
// current.
type IngestState struct {
	// Path is the filesystem path of the ingested document.
	Path string

	// FileName is the base name of the ingested file.
	FileName string

	// Title is the title the document was ingested with, if any.
	Title string

	// ChunkCount is the number of chunks produced.
	ChunkCount int

	// ProcessedAt is when the ingestion completed.
	ProcessedAt time.Time
}

// IngestResult reports the outcome of a successful ingestion.
type IngestResult struct {
	// FileName is the base name of the ingested file.
	FileName string

	// ChunkCount is the number of chunks indexed.
	ChunkCount int
}
