package services

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
	"github.com/docsift-labs/docsift-cli/internal/logger"
)

// DefaultBatchSize is used when the embedding service does not report
// its own batch limit.
const DefaultBatchSize = 100

// Batcher groups texts into embedding-service-sized batches and
// produces one vector per text, order-preserved. Batches are issued
// sequentially: this bounds memory and respects service rate limits,
// at the cost of latency scaling linearly with chunk count.
type Batcher struct {
	svc       driven.EmbeddingService
	batchSize int
	limiter   *rate.Limiter
}

// BatcherOption configures the batcher.
type BatcherOption func(*Batcher)

// WithBatchSize overrides the batch size. Values below one are ignored.
func WithBatchSize(size int) BatcherOption {
	return func(b *Batcher) {
		if size > 0 {
			b.batchSize = size
		}
	}
}

// WithRateLimit throttles batch calls to the given number per second.
func WithRateLimit(perSecond float64) BatcherOption {
	return func(b *Batcher) {
		if perSecond > 0 {
			b.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// NewBatcher creates a batcher for the given embedding service.
// The batch size defaults to the service's own limit, then to
// DefaultBatchSize.
func NewBatcher(svc driven.EmbeddingService, opts ...BatcherOption) *Batcher {
	b := &Batcher{
		svc:       svc,
		batchSize: DefaultBatchSize,
	}
	if svc != nil {
		if limit := svc.MaxBatchSize(); limit > 0 {
			b.batchSize = limit
		}
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run partitions texts into consecutive batches of at most the batch
// size and calls fn once per batch, in order, with the batch's start
// offset in texts and its vectors. Vectors are order-matched with the
// batch's texts. Texts are never reordered, deduplicated or dropped.
//
// A batch call that fails, returns the wrong vector count, or returns
// a dimension inconsistent with the first vector seen aborts the run
// with an error wrapping domain.ErrEmbeddingService.
func (b *Batcher) Run(ctx context.Context, texts []string, fn func(start int, vectors [][]float32) error) error {
	if len(texts) == 0 {
		return nil
	}

	dimension := 0
	for start := 0; start < len(texts); start += b.batchSize {
		end := start + b.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		if b.limiter != nil {
			if err := b.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		logger.Debug("Embedding batch %d..%d of %d", start, end, len(texts))
		vectors, err := b.svc.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return fmt.Errorf("%w: batch at offset %d: %v", domain.ErrEmbeddingService, start, err)
		}
		if len(vectors) != end-start {
			return fmt.Errorf("%w: batch at offset %d returned %d vectors for %d texts",
				domain.ErrEmbeddingService, start, len(vectors), end-start)
		}
		for i, vec := range vectors {
			if dimension == 0 {
				dimension = len(vec)
			}
			if len(vec) == 0 || len(vec) != dimension {
				return fmt.Errorf("%w: vector at offset %d has dimension %d, expected %d",
					domain.ErrEmbeddingService, start+i, len(vec), dimension)
			}
		}

		if err := fn(start, vectors); err != nil {
			return err
		}
	}

	return nil
}

// EmbedAll embeds every text and returns the full order-matched vector
// sequence. Embedding N texts with batch size B issues ceil(N/B) calls.
func (b *Batcher) EmbedAll(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, 0, len(texts))
	err := b.Run(ctx, texts, func(_ int, vectors [][]float32) error {
		out = append(out, vectors...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
