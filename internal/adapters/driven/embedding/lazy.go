// Package embedding provides lazy construction around embedding
// providers. The model behind a provider is expensive to reach, so it
// is initialised on first use and shared process-wide.
package embedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/ports/driven"
)

// Ensure Lazy implements the interface.
var _ driven.EmbeddingService = (*Lazy)(nil)

// Factory builds the underlying embedding service. It is called at
// most once, by the first operation that needs embeddings.
type Factory func(ctx context.Context) (driven.EmbeddingService, error)

// Lazy defers provider construction until the first call. A failed
// initialisation is sticky: every later call reports the same error
// wrapped in ErrEmbeddingUnavailable rather than retrying.
type Lazy struct {
	factory Factory

	once    sync.Once
	mu      sync.RWMutex
	service driven.EmbeddingService
	initErr error
}

// NewLazy creates a lazily initialised embedding service.
func NewLazy(factory Factory) *Lazy {
	return &Lazy{factory: factory}
}

// init runs the factory exactly once and pings the provider. Safe for
// concurrent first callers.
func (l *Lazy) init(ctx context.Context) (driven.EmbeddingService, error) {
	l.once.Do(func() {
		svc, err := l.factory(ctx)
		if err == nil {
			if pingErr := svc.Ping(ctx); pingErr != nil {
				_ = svc.Close()
				svc, err = nil, pingErr
			}
		}
		l.mu.Lock()
		l.service, l.initErr = svc, err
		l.mu.Unlock()
	})

	if l.initErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, l.initErr)
	}
	return l.service, nil
}

// Embed generates a vector embedding for the given text.
func (l *Lazy) Embed(ctx context.Context, text string) ([]float32, error) {
	svc, err := l.init(ctx)
	if err != nil {
		return nil, err
	}
	return svc.Embed(ctx, text)
}

// EmbedBatch generates embeddings for multiple texts.
func (l *Lazy) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	svc, err := l.init(ctx)
	if err != nil {
		return nil, err
	}
	return svc.EmbedBatch(ctx, texts)
}

// loaded returns the provider without triggering initialisation.
func (l *Lazy) loaded() driven.EmbeddingService {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.service
}

// Dimensions returns the embedding vector size, or 0 before the
// provider has been initialised.
func (l *Lazy) Dimensions() int {
	if svc := l.loaded(); svc != nil {
		return svc.Dimensions()
	}
	return 0
}

// ModelName returns the model name, or empty before initialisation.
func (l *Lazy) ModelName() string {
	if svc := l.loaded(); svc != nil {
		return svc.ModelName()
	}
	return ""
}

// Ping initialises the provider if needed and reports its health.
func (l *Lazy) Ping(ctx context.Context) error {
	svc, err := l.init(ctx)
	if err != nil {
		return err
	}
	return svc.Ping(ctx)
}

// Close releases the underlying provider when it was built.
func (l *Lazy) Close() error {
	if svc := l.loaded(); svc != nil {
		return svc.Close()
	}
	return nil
}
