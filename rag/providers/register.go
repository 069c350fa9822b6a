// Package providers implements embedding service providers for the
// chunking pipeline. A provider converts chunk text into vector
// representations; the registration system lets new providers be added
// without touching the pipeline, which only depends on the Embedder
// interface.
package providers

import (
	"context"
	"fmt"
	"sync"
)

// Embedder converts text into a vector representation. Implementations
// must be safe for concurrent use; chunks are embedded independently and
// re-embedding the same text must be safe to retry.
type Embedder interface {
	// Embed generates the embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float64, error)
	// GetDimension returns the vector dimension of the current model.
	GetDimension() (int, error)
}

// EmbedderFactory creates an Embedder from provider-specific configuration.
type EmbedderFactory func(config map[string]interface{}) (Embedder, error)

var (
	embedderFactories = make(map[string]EmbedderFactory)
	mu                sync.RWMutex
)

// RegisterEmbedder registers a factory under a provider name. Providers
// typically register themselves from an init function.
func RegisterEmbedder(name string, factory EmbedderFactory) {
	mu.Lock()
	defer mu.Unlock()
	embedderFactories[name] = factory
}

// GetEmbedderFactory returns the factory registered under name.
func GetEmbedderFactory(name string) (EmbedderFactory, error) {
	mu.RLock()
	defer mu.RUnlock()
	factory, ok := embedderFactories[name]
	if !ok {
		return nil, fmt.Errorf("embedder not found: %s", name)
	}
	return factory, nil
}
