package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
)

// fakeEmbedder produces deterministic letter-histogram embeddings so
// similar texts get similar vectors. Failure modes are injectable by
// 1-based call index.
type fakeEmbedder struct {
	batchLimit int
	dim        int

	calls [][]string

	failOn     int // call fails outright
	shortOn    int // call returns one vector too few
	dimShiftOn int // call returns vectors of dim+1
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{batchLimit: 100, dim: 8}
}

func (f *fakeEmbedder) embed(text string, dim int) []float32 {
	vec := make([]float32, dim)
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			vec[int(r)%dim]++
		}
	}
	return vec
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.calls = append(f.calls, append([]string(nil), texts...))
	call := len(f.calls)

	if f.failOn == call {
		return nil, errors.New("embedding backend down")
	}

	dim := f.dim
	if f.dimShiftOn == call {
		dim++
	}

	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		out = append(out, f.embed(t, dim))
	}
	if f.shortOn == call && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (f *fakeEmbedder) MaxBatchSize() int { return f.batchLimit }
func (f *fakeEmbedder) ModelName() string { return "fake-histogram" }

func (f *fakeEmbedder) Ping(context.Context) error { return nil }
func (f *fakeEmbedder) Close() error               { return nil }

// fakeExtractor returns fixed pages regardless of input bytes.
type fakeExtractor struct {
	pages []string
	err   error
}

func (f *fakeExtractor) ExtractPages(context.Context, []byte) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

// fakeStateStore keeps ingest state in memory and records operations
// into an optional shared op log.
type fakeStateStore struct {
	state   *domain.IngestState
	lastErr error
	ops     *[]string
}

func (f *fakeStateStore) Last(context.Context) (*domain.IngestState, error) {
	if f.lastErr != nil {
		return nil, f.lastErr
	}
	if f.state == nil {
		return nil, nil
	}
	copied := *f.state
	return &copied, nil
}

func (f *fakeStateStore) Record(_ context.Context, state domain.IngestState) error {
	f.state = &state
	if f.ops != nil {
		*f.ops = append(*f.ops, "record-state")
	}
	return nil
}

func (f *fakeStateStore) Close() error { return nil }

// recordingStore wraps a VectorStore, logging operations and allowing
// injected failures.
type recordingStore struct {
	inner driven.VectorStore
	ops   *[]string

	deleteErr error
	createErr error
	upsertErr error
}

func (r *recordingStore) DeleteCollection(ctx context.Context, name string) error {
	*r.ops = append(*r.ops, "delete")
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.inner.DeleteCollection(ctx, name)
}

func (r *recordingStore) CreateCollection(ctx context.Context, name string, dimension int) error {
	*r.ops = append(*r.ops, fmt.Sprintf("create(%d)", dimension))
	if r.createErr != nil {
		return r.createErr
	}
	return r.inner.CreateCollection(ctx, name, dimension)
}

func (r *recordingStore) Upsert(ctx context.Context, name string, records []domain.IndexRecord) error {
	*r.ops = append(*r.ops, fmt.Sprintf("upsert(%d)", len(records)))
	if r.upsertErr != nil {
		return r.upsertErr
	}
	return r.inner.Upsert(ctx, name, records)
}

func (r *recordingStore) Query(ctx context.Context, name string, vector []float32, topK int) ([]driven.VectorHit, error) {
	*r.ops = append(*r.ops, "query")
	return r.inner.Query(ctx, name, vector, topK)
}

// fakeLLM returns a canned answer and records the messages it saw.
type fakeLLM struct {
	answer   string
	err      error
	messages []driven.ChatMessage
	calls    int
}

func (f *fakeLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	f.calls++
	f.messages = messages
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeLLM) ModelName() string { return "fake-chat" }

func (f *fakeLLM) Ping(context.Context) error { return nil }
func (f *fakeLLM) Close() error               { return nil }
