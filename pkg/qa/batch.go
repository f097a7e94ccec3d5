package qa

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/askpage/askpage/internal/models"
)

// AnswerAll answers every question over a bounded worker pool and returns
// the answers in input order. Retrieval failures are absorbed per question
// by Answer; a context cancellation cancels the whole batch. onDone, if
// non-nil, is called once per completed question.
func (e *Engine) AnswerAll(ctx context.Context, questions []string, workers int, onDone func()) ([]models.Answer, error) {
	if workers < 1 {
		workers = 1
	}

	answers := make([]models.Answer, len(questions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, question := range questions {
		i, question := i, question
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			answers[i] = e.Answer(ctx, question)
			if onDone != nil {
				onDone()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return answers, nil
}
