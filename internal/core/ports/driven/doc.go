// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): document extraction, embedding, the
// vector store wire contract, durable ingest state, and the optional
// language model. Implementations live under internal/adapters/driven.
package driven
