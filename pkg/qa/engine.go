// Package qa answers questions against stored page content by similarity
// retrieval plus keyword sentence extraction.
package qa

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/askpage/askpage/internal/models"
	"github.com/askpage/askpage/internal/types"
)

const sentenceDelimiter = ". "

// notFoundTemplate is the exact response when retrieval yields nothing.
// There is intentionally no space after the colon.
const notFoundTemplate = "Q: %s\nA:couldn't find relevant information."

type EngineConfig struct {
	TopK   int
	Logger *slog.Logger
}

// Engine answers individual questions. It is stateless per call and safe
// for concurrent use once the retriever's store has been populated.
type Engine struct {
	retriever types.Retriever
	config    EngineConfig
	logger    *slog.Logger
}

func NewEngine(retriever types.Retriever, config EngineConfig) *Engine {
	if config.TopK == 0 {
		config.TopK = 5
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Engine{
		retriever: retriever,
		config:    config,
		logger:    config.Logger,
	}
}

// Answer retrieves the chunks most similar to question and extracts one
// sentence from them. A retrieval failure is logged and answered with the
// not-found template rather than aborting the caller.
func (e *Engine) Answer(ctx context.Context, question string) models.Answer {
	chunks, err := e.retriever.Retrieve(ctx, question, e.config.TopK)
	if err != nil {
		e.logger.Error("error retrieving text chunks", "question", question, "err", err)
	}

	if len(chunks) == 0 {
		return models.Answer{
			Question: question,
			Response: fmt.Sprintf(notFoundTemplate, question),
		}
	}

	combined := strings.Join(chunks, " ")
	sentence := ExtractAnswer(combined, question)

	return models.Answer{
		Question: question,
		Response: fmt.Sprintf("Q: %s\nA: %s", question, sentence),
	}
}

// ExtractAnswer picks the first sentence of context containing any question
// token as a case-insensitive substring, falling back to the first sentence
// when none match. The result is trimmed and suffixed with a period.
func ExtractAnswer(context, question string) string {
	sentences := strings.Split(context, sentenceDelimiter)

	var relevant string
	for _, sentence := range sentences {
		if isRelevantSentence(sentence, question) {
			relevant = sentence
			break
		}
	}

	if relevant == "" {
		relevant = sentences[0]
	}

	return strings.TrimSpace(relevant) + "."
}

// isRelevantSentence matches on substring containment, not whole words, so
// a token like "is" also matches inside "this".
func isRelevantSentence(sentence, question string) bool {
	lower := strings.ToLower(sentence)
	for _, keyword := range strings.Fields(question) {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
