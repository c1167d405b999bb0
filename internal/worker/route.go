package worker

import (
	"context"

	"github.com/pwestermann/stylo/internal/corpus"
	"github.com/pwestermann/stylo/internal/model"
)

// RouteJob builds one article's annotated document and routes it through the
// partition sinks.
type RouteJob struct {
	Article *model.Article
	Router  *corpus.Router
}

// Execute runs the build-and-route step.
func (j RouteJob) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return j.Router.Accept(j.Article)
}
