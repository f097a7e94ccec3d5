package store

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/askpage/askpage/internal/types"
)

// chunkDelimiter splits page content into sentence-like retrieval units.
const chunkDelimiter = ". "

// MemoryStore holds text chunks and their embeddings in memory. Store
// replaces the whole chunk set; Retrieve is read-only, so once the store is
// populated any number of retrievals may run concurrently.
type MemoryStore struct {
	embedder types.Embedder
	logger   *slog.Logger

	mu         sync.RWMutex
	chunks     []string
	embeddings [][]float32
}

func New(embedder types.Embedder, logger *slog.Logger) *MemoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryStore{
		embedder: embedder,
		logger:   logger,
	}
}

// Store splits content into chunks, embeds each one, and replaces any
// previously stored state. Embedding failures propagate and leave the
// previous state untouched.
func (s *MemoryStore) Store(ctx context.Context, content string) error {
	chunks := splitChunks(content)
	if len(chunks) == 0 {
		s.mu.Lock()
		s.chunks = nil
		s.embeddings = nil
		s.mu.Unlock()
		return nil
	}

	embeddings, err := s.embedder.CreateEmbedding(ctx, chunks)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(embeddings), len(chunks))
	}

	s.mu.Lock()
	s.chunks = chunks
	s.embeddings = embeddings
	s.mu.Unlock()

	s.logger.Info("stored text chunks", "chunks", len(chunks))
	return nil
}

// Retrieve returns up to topK stored chunks ranked by descending cosine
// similarity to the query. Equal scores keep document order. The returned
// slice is always usable; a non-nil error is a diagnostic and always comes
// with an empty slice, so a failed retrieval never aborts the caller.
func (s *MemoryStore) Retrieve(ctx context.Context, query string, topK int) ([]string, error) {
	if s.Len() == 0 || topK <= 0 {
		return nil, nil
	}

	// Embed outside the lock; the embedder call is the slow step.
	vectors, err := s.embedder.CreateEmbedding(ctx, []string{query})
	if err != nil || len(vectors) == 0 {
		if err == nil {
			err = fmt.Errorf("embedder returned no vector for query")
		}
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	queryVec := vectors[0]

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		index int
		score float64
	}

	results := make([]scored, 0, len(s.chunks))
	for i, emb := range s.embeddings {
		results = append(results, scored{index: i, score: cosine(queryVec, emb)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if topK > len(results) {
		topK = len(results)
	}

	chunks := make([]string, 0, topK)
	for _, r := range results[:topK] {
		chunks = append(chunks, s.chunks[r.index])
	}
	return chunks, nil
}

// Len reports the number of stored chunks.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

func splitChunks(content string) []string {
	var chunks []string
	for _, chunk := range strings.Split(content, chunkDelimiter) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

// cosine is the dot product normalized by vector magnitudes. For unit-norm
// embeddings it reduces to the plain dot product.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])
		dot += va * vb
		na += va * va
		nb += vb * vb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
