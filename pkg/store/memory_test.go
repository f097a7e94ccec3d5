package store_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askpage/askpage/pkg/store"
)

// keywordEmbedder is a deterministic fake: each dimension signals the
// presence of one keyword, so similarity rankings are easy to reason about.
type keywordEmbedder struct {
	keywords []string
	err      error
	calls    int
}

func (e *keywordEmbedder) CreateEmbedding(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, len(e.keywords))
		lower := strings.ToLower(text)
		for j, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				vec[j] = 1
			}
		}
		out[i] = vec
	}
	return out, nil
}

func newTestEmbedder() *keywordEmbedder {
	return &keywordEmbedder{keywords: []string{"inflation", "growth", "markets"}}
}

func TestStoreSplitsOnSentenceDelimiter(t *testing.T) {
	s := store.New(newTestEmbedder(), nil)

	err := s.Store(context.Background(), "Inflation rose. Growth slowed. Markets reacted")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
}

func TestStoreSkipsEmptyChunks(t *testing.T) {
	s := store.New(newTestEmbedder(), nil)

	err := s.Store(context.Background(), "Inflation rose. .  . Growth slowed. ")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestStoreReplacesPreviousState(t *testing.T) {
	s := store.New(newTestEmbedder(), nil)
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "Inflation rose. Growth slowed"))
	require.NoError(t, s.Store(ctx, "Markets reacted"))

	assert.Equal(t, 1, s.Len())

	chunks, err := s.Retrieve(ctx, "inflation", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Markets reacted"}, chunks)
}

func TestStorePropagatesEmbedderError(t *testing.T) {
	emb := newTestEmbedder()
	emb.err = errors.New("model unavailable")
	s := store.New(emb, nil)

	err := s.Store(context.Background(), "Inflation rose. Growth slowed")
	require.Error(t, err)
	assert.ErrorContains(t, err, "model unavailable")
	assert.Equal(t, 0, s.Len())
}

func TestRetrieveRanksByScore(t *testing.T) {
	s := store.New(newTestEmbedder(), nil)
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "Inflation rose. Growth slowed. Markets reacted"))

	chunks, err := s.Retrieve(ctx, "inflation", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Inflation rose"}, chunks)
}

func TestRetrieveClampsTopK(t *testing.T) {
	s := store.New(newTestEmbedder(), nil)
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "Inflation rose. Growth slowed. Markets reacted"))

	chunks, err := s.Retrieve(ctx, "inflation", 10)
	require.NoError(t, err)
	assert.Len(t, chunks, 3, "at most min(topK, N) chunks")

	// Every retrieved chunk is a member of the stored set
	for _, chunk := range chunks {
		assert.Contains(t, []string{"Inflation rose", "Growth slowed", "Markets reacted"}, chunk)
	}
}

func TestRetrieveEmptyStore(t *testing.T) {
	s := store.New(newTestEmbedder(), nil)

	chunks, err := s.Retrieve(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestRetrieveEmbedderErrorYieldsEmptyResult(t *testing.T) {
	emb := newTestEmbedder()
	s := store.New(emb, nil)
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "Inflation rose. Growth slowed"))

	emb.err = errors.New("model unavailable")
	chunks, err := s.Retrieve(ctx, "inflation", 5)
	assert.Error(t, err, "diagnostic is reported")
	assert.Empty(t, chunks, "result stays usable as an empty set")
}

func TestRetrieveStableTieBreak(t *testing.T) {
	s := store.New(newTestEmbedder(), nil)
	ctx := context.Background()

	// No chunk shares a keyword with the query, so all scores tie at zero
	// and document order must be preserved.
	require.NoError(t, s.Store(ctx, "First sentence. Second sentence. Third sentence"))

	chunks, err := s.Retrieve(ctx, "unrelated", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"First sentence", "Second sentence", "Third sentence"}, chunks)
}
