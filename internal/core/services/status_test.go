package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
)

// historyStateStore extends fakeStateStore with an ingestion log.
type historyStateStore struct {
	fakeStateStore
	entries []domain.IngestState
}

func (h *historyStateStore) History(_ context.Context, limit int) ([]domain.IngestState, error) {
	out := make([]domain.IngestState, 0, len(h.entries))
	for i := len(h.entries) - 1; i >= 0; i-- {
		out = append(out, h.entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func TestStatus_NeverIngested(t *testing.T) {
	svc := NewStatusService(&fakeStateStore{}, newFakeEmbedder(), "docs", false)

	report, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Nil(t, report.LastIngest)
	assert.Equal(t, "fake-histogram", report.EmbeddingModel)
	assert.Equal(t, "docs", report.Collection)
	assert.False(t, report.AskEnabled)
}

func TestStatus_AfterIngest(t *testing.T) {
	state := &fakeStateStore{state: &domain.IngestState{
		Path:        "/docs/guide.pdf",
		FileName:    "guide.pdf",
		ChunkCount:  9,
		ProcessedAt: time.Now().UTC(),
	}}
	svc := NewStatusService(state, newFakeEmbedder(), "docs", true)

	report, err := svc.Status(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report.LastIngest)
	assert.Equal(t, "guide.pdf", report.LastIngest.FileName)
	assert.Equal(t, 9, report.LastIngest.ChunkCount)
	assert.True(t, report.AskEnabled)
}

func TestHistory_UsesStoreLogWhenAvailable(t *testing.T) {
	store := &historyStateStore{entries: []domain.IngestState{
		{Path: "/a"}, {Path: "/b"}, {Path: "/c"},
	}}
	svc := NewStatusService(store, newFakeEmbedder(), "docs", false)

	history, err := svc.History(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "/c", history[0].Path)
	assert.Equal(t, "/b", history[1].Path)
}

func TestHistory_FallsBackToLastEntry(t *testing.T) {
	t.Run("with state", func(t *testing.T) {
		state := &fakeStateStore{state: &domain.IngestState{Path: "/only.pdf"}}
		svc := NewStatusService(state, newFakeEmbedder(), "docs", false)

		history, err := svc.History(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "/only.pdf", history[0].Path)
	})

	t.Run("empty store", func(t *testing.T) {
		svc := NewStatusService(&fakeStateStore{}, newFakeEmbedder(), "docs", false)

		history, err := svc.History(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}
