// Package services implements the driving ports: the embedding
// batcher, the vector index manager, and the ingestion and retrieval
// pipelines composed from the driven ports.
package services
