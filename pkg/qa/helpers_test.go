package qa_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askpage/askpage/pkg/store"
)

// stubEmbedder maps keyword presence onto vector dimensions so similarity
// rankings are deterministic in tests.
type stubEmbedder struct{}

func (stubEmbedder) keywords() []string {
	return []string{"inflation", "growth", "markets"}
}

func (e *stubEmbedder) CreateEmbedding(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		keywords := e.keywords()
		vec := make([]float32, len(keywords))
		lower := strings.ToLower(text)
		for j, kw := range keywords {
			if strings.Contains(lower, kw) {
				vec[j] = 1
			}
		}
		out[i] = vec
	}
	return out, nil
}

func newStoreWithContent(t *testing.T, emb *stubEmbedder, content string) *store.MemoryStore {
	t.Helper()
	s := store.New(emb, nil)
	require.NoError(t, s.Store(context.Background(), content))
	return s
}
