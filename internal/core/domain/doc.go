// Package domain defines the core business entities for Docsift.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chunk: A bounded span of document text, the unit of embedding
//   - ChunkMetadata: The fixed-field payload stored alongside each vector
//   - IndexRecord: An (id, vector, metadata) triple persisted in the index
//   - IngestState: The durable "which document is current" record
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
