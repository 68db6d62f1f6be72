package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsift-labs/docsift-cli/internal/adapters/driven/vectorstore/memory"
	"github.com/docsift-labs/docsift-cli/internal/chunkers/paragraph"
	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driving"
)

// writeTempDoc creates a placeholder file; the fake extractor ignores
// its bytes.
func writeTempDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 placeholder"), 0600))
	return path
}

// page builds a single-paragraph page of roughly 830 characters.
func page(word string) string {
	return strings.TrimSpace(strings.Repeat(word+" ipsum dolor sit amet ", 31))
}

func newIngestFixture(t *testing.T, extractor *fakeExtractor) (*IngestService, *memory.Store, *fakeStateStore, *fakeEmbedder) {
	t.Helper()
	store := memory.NewStore()
	embedder := newFakeEmbedder()
	state := &fakeStateStore{}
	svc := NewIngestService(
		extractor,
		paragraph.New(1000),
		NewBatcher(embedder),
		NewIndexManager(store, "docs"),
		state,
	)
	return svc, store, state, embedder
}

func TestIngestService_Ingest(t *testing.T) {
	ctx := context.Background()

	// Three pages totaling ~2500 characters with target size 1000
	// produce exactly 3 chunks.
	extractor := &fakeExtractor{pages: []string{page("alpha"), page("beta"), page("gamma")}}
	svc, store, state, _ := newIngestFixture(t, extractor)
	path := writeTempDoc(t)

	result, err := svc.Ingest(ctx, path, driving.IngestOptions{
		Title:  "Quarterly Report",
		Author: "Finance",
	})
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", result.FileName)
	assert.Equal(t, 3, result.ChunkCount)
	assert.Equal(t, 3, store.Count("docs"))

	// State records the document only after a fully successful run.
	require.NotNil(t, state.state)
	assert.Equal(t, path, state.state.Path)
	assert.Equal(t, "report.pdf", state.state.FileName)
	assert.Equal(t, 3, state.state.ChunkCount)
	assert.False(t, state.state.ProcessedAt.IsZero())

	// Metadata carries chunk indices 0..2 and the fixed total.
	embedder := newFakeEmbedder()
	hits, err := store.Query(ctx, "docs", embedder.embed("alpha", embedder.dim), 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	seen := map[int]bool{}
	for _, hit := range hits {
		assert.Equal(t, 3, hit.Metadata.TotalChunks)
		assert.Equal(t, "Quarterly Report", hit.Metadata.Title)
		assert.Equal(t, "Finance", hit.Metadata.Author)
		assert.Equal(t, "report.pdf", hit.Metadata.FileName)
		assert.Equal(t, path, hit.Metadata.Source)
		assert.NotEmpty(t, hit.Metadata.Text)
		seen[hit.Metadata.ChunkIndex] = true
	}
	assert.Equal(t, map[int]bool{0: true, 1: true, 2: true}, seen)
}

func TestIngestService_Ingest_OperationOrder(t *testing.T) {
	ctx := context.Background()

	var ops []string
	store := &recordingStore{inner: memory.NewStore(), ops: &ops}
	embedder := newFakeEmbedder()
	state := &fakeStateStore{ops: &ops}
	svc := NewIngestService(
		&fakeExtractor{pages: []string{page("alpha"), page("beta"), page("gamma")}},
		paragraph.New(1000),
		NewBatcher(embedder, WithBatchSize(2)),
		NewIndexManager(store, "docs"),
		state,
	)

	_, err := svc.Ingest(ctx, writeTempDoc(t), driving.IngestOptions{})
	require.NoError(t, err)

	// Reset strictly precedes creation, creation precedes every
	// upsert, and state is recorded strictly after the last upsert.
	assert.Equal(t, []string{"delete", "create(8)", "upsert(2)", "upsert(1)", "record-state"}, ops)
}

func TestIngestService_Ingest_FreshIDsPerRun(t *testing.T) {
	ctx := context.Background()
	extractor := &fakeExtractor{pages: []string{page("alpha")}}
	svc, store, _, embedder := newIngestFixture(t, extractor)
	path := writeTempDoc(t)

	collectIDs := func() map[string]bool {
		hits, err := store.Query(ctx, "docs", embedder.embed("alpha", embedder.dim), 10)
		require.NoError(t, err)
		ids := map[string]bool{}
		for _, h := range hits {
			ids[h.ID] = true
		}
		return ids
	}

	_, err := svc.Ingest(ctx, path, driving.IngestOptions{})
	require.NoError(t, err)
	first := collectIDs()

	_, err = svc.Ingest(ctx, path, driving.IngestOptions{})
	require.NoError(t, err)
	second := collectIDs()

	require.NotEmpty(t, first)
	for id := range second {
		assert.False(t, first[id], "re-ingesting identical text must yield fresh ids")
	}
}

func TestIngestService_Ingest_ReplacesPreviousDocument(t *testing.T) {
	ctx := context.Background()
	extractor := &fakeExtractor{pages: []string{page("alpha"), page("beta"), page("gamma")}}
	svc, store, _, _ := newIngestFixture(t, extractor)

	_, err := svc.Ingest(ctx, writeTempDoc(t), driving.IngestOptions{})
	require.NoError(t, err)
	require.Equal(t, 3, store.Count("docs"))

	// Second document is smaller; the collection must not accumulate.
	extractor.pages = []string{page("delta")}
	_, err = svc.Ingest(ctx, writeTempDoc(t), driving.IngestOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, store.Count("docs"))
}

func TestIngestService_Ingest_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		svc, _, state, _ := newIngestFixture(t, &fakeExtractor{pages: []string{"text"}})
		_, err := svc.Ingest(ctx, filepath.Join(t.TempDir(), "absent.pdf"), driving.IngestOptions{})
		require.Error(t, err)
		assert.Nil(t, state.state, "failed ingestion must not record state")
	})

	t.Run("extraction failure", func(t *testing.T) {
		extractor := &fakeExtractor{err: fmt.Errorf("%w: damaged xref table", domain.ErrDocumentParse)}
		svc, _, state, _ := newIngestFixture(t, extractor)

		_, err := svc.Ingest(ctx, writeTempDoc(t), driving.IngestOptions{})
		require.ErrorIs(t, err, domain.ErrDocumentParse)
		assert.Nil(t, state.state)
	})

	t.Run("no extractable text", func(t *testing.T) {
		svc, _, state, _ := newIngestFixture(t, &fakeExtractor{pages: []string{"  ", "\n"}})
		_, err := svc.Ingest(ctx, writeTempDoc(t), driving.IngestOptions{})
		require.ErrorIs(t, err, domain.ErrDocumentParse)
		assert.Nil(t, state.state)
	})

	t.Run("embedding failure preserves previous state", func(t *testing.T) {
		extractor := &fakeExtractor{pages: []string{page("alpha"), page("beta"), page("gamma")}}
		svc, _, state, embedder := newIngestFixture(t, extractor)
		path := writeTempDoc(t)

		_, err := svc.Ingest(ctx, path, driving.IngestOptions{})
		require.NoError(t, err)
		previous := *state.state

		embedder.failOn = len(embedder.calls) + 2 // fail the second batch of the next run
		svc2 := NewIngestService(
			extractor,
			paragraph.New(1000),
			NewBatcher(embedder, WithBatchSize(2)),
			NewIndexManager(memory.NewStore(), "docs"),
			state,
		)
		_, err = svc2.Ingest(ctx, path, driving.IngestOptions{})
		require.ErrorIs(t, err, domain.ErrEmbeddingService)

		// The previous document remains current.
		assert.Equal(t, previous, *state.state)
	})
}
