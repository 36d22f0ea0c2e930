// Package source fetches raw curriculum tables from a backing layout and
// assembles the validated entity graph. Layouts are tried in priority order;
// each strategy gets exactly one attempt per load.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/studyhub-app/studyhub-backend/internal/content"
	"github.com/studyhub-app/studyhub-backend/internal/obs"
)

// Strategy reads one backing representation into raw tables.
type Strategy interface {
	Name() string
	Tables(ctx context.Context) (content.Tables, error)
}

// SourceUnavailableError means every configured strategy failed; Last carries
// the final strategy's error.
type SourceUnavailableError struct {
	Last error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("all curriculum sources unavailable: %v", e.Last)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Last }

// Loader runs the strategy chain and turns the first usable table set into a
// validated graph. A validation failure counts as a strategy failure and
// triggers fallback exactly like an I/O failure.
type Loader struct {
	strategies  []Strategy
	transformer *content.Transformer
	obs         obs.Observer
}

// NewLoader creates a loader over the given strategies, tried in order.
func NewLoader(observer obs.Observer, strategies ...Strategy) *Loader {
	if observer == nil {
		observer = obs.Nop()
	}
	return &Loader{
		strategies:  strategies,
		transformer: content.NewTransformer(observer),
		obs:         observer,
	}
}

// Load attempts each strategy once and returns the first graph that passes
// validation. If every strategy fails, the last error is wrapped in
// SourceUnavailableError.
func (l *Loader) Load(ctx context.Context) (*content.Graph, error) {
	var lastErr error
	for _, strategy := range l.strategies {
		l.obs.Info("loading curriculum", "strategy", strategy.Name())

		tables, err := strategy.Tables(ctx)
		if err != nil {
			l.obs.Warn("curriculum source failed, trying next",
				"strategy", strategy.Name(), "error", err)
			lastErr = err
			continue
		}

		graph := l.transformer.TransformAll(tables)
		if err := content.Validate(graph, l.obs); err != nil {
			l.obs.Warn("curriculum source produced incomplete model, trying next",
				"strategy", strategy.Name(), "error", err)
			lastErr = err
			continue
		}

		l.obs.Info("curriculum loaded",
			"strategy", strategy.Name(),
			"subjects", len(graph.Subjects),
			"topics", len(graph.Topics),
		)
		return graph, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no source strategies configured")
	}
	return nil, &SourceUnavailableError{Last: lastErr}
}
