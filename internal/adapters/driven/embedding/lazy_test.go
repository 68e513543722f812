package embedding

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/domain"
	"github.com/ZakariaElKhaldi/ai-profiles-creation/internal/core/ports/driven"
)

// fakeService is a trivially working provider for tests.
type fakeService struct {
	pingErr error
	closed  bool
}

func (f *fakeService) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (f *fakeService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (f *fakeService) Dimensions() int              { return 3 }
func (f *fakeService) ModelName() string            { return "fake-model" }
func (f *fakeService) Ping(_ context.Context) error { return f.pingErr }
func (f *fakeService) Close() error                 { f.closed = true; return nil }

var _ driven.EmbeddingService = (*fakeService)(nil)

func TestLazyInitOnce(t *testing.T) {
	var calls atomic.Int32
	lazy := NewLazy(func(_ context.Context) (driven.EmbeddingService, error) {
		calls.Add(1)
		return &fakeService{}, nil
	})

	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vec, err := lazy.Embed(ctx, "hello")
			assert.NoError(t, err)
			assert.Len(t, vec, 3)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 3, lazy.Dimensions())
	assert.Equal(t, "fake-model", lazy.ModelName())
}

func TestLazyFactoryErrorIsSticky(t *testing.T) {
	var calls atomic.Int32
	lazy := NewLazy(func(_ context.Context) (driven.EmbeddingService, error) {
		calls.Add(1)
		return nil, errors.New("model load failed")
	})

	ctx := context.Background()

	_, err := lazy.Embed(ctx, "first")
	require.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Contains(t, err.Error(), "model load failed")

	_, err = lazy.Embed(ctx, "second")
	require.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)

	// No retry after a failed init.
	assert.Equal(t, int32(1), calls.Load())
}

func TestLazyPingFailureClosesProvider(t *testing.T) {
	svc := &fakeService{pingErr: errors.New("connection refused")}
	lazy := NewLazy(func(_ context.Context) (driven.EmbeddingService, error) {
		return svc, nil
	})

	_, err := lazy.Embed(context.Background(), "text")
	require.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.True(t, svc.closed)
}

func TestLazyAccessorsDuringInit(t *testing.T) {
	lazy := NewLazy(func(_ context.Context) (driven.EmbeddingService, error) {
		return &fakeService{}, nil
	})

	ctx := context.Background()

	// Metadata accessors race against the first Embed; run under the
	// race detector they must stay safe either before or after init.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := lazy.Embed(ctx, "text")
			assert.NoError(t, err)
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			dims := lazy.Dimensions()
			assert.Contains(t, []int{0, 3}, dims)
			name := lazy.ModelName()
			assert.Contains(t, []string{"", "fake-model"}, name)
		}()
	}
	wg.Wait()
}

func TestLazyBeforeInit(t *testing.T) {
	lazy := NewLazy(func(_ context.Context) (driven.EmbeddingService, error) {
		return &fakeService{}, nil
	})

	assert.Equal(t, 0, lazy.Dimensions())
	assert.Empty(t, lazy.ModelName())
	assert.NoError(t, lazy.Close())
}
