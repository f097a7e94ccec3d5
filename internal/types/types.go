package types

import (
	"context"

	"github.com/askpage/askpage/internal/models"
)

// Core interfaces
type Embedder interface {
	// CreateEmbedding returns one fixed-length vector per input text.
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

type Retriever interface {
	// Retrieve returns up to topK stored chunks ranked best-to-worst by
	// similarity to the query. The chunk slice is always usable; a non-nil
	// error is a diagnostic and always comes with an empty slice.
	Retrieve(ctx context.Context, query string, topK int) ([]string, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) (models.Page, error)
}
