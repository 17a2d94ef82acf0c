package api

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/ka2n/yure/log"
	"github.com/morikuni/failure/v2"
)

// Outcome classifies how a report generation ended
type Outcome string

const (
	OutcomeReport       Outcome = "report"
	OutcomeFetchFailure Outcome = "fetch_failure"
	OutcomeNoData       Outcome = "no_data"
)

// Result is the terminal artifact of one fetch cycle
type Result struct {
	Text     Report
	Outcome  Outcome
	Features FeatureSet
}

// Fetcher retrieves the raw response body for a URL
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// Observer receives the outcome of every generation
type Observer interface {
	ObserveGeneration(outcome Outcome, duration time.Duration, features int)
}

// Generator runs query, fetch, parse and format in sequence
type Generator struct {
	Query     Query
	Fetcher   Fetcher
	Formatter Formatter
	Observer  Observer
	Clock     clockwork.Clock
}

// NewGenerator creates a generator for the default query
func NewGenerator(fetcher Fetcher, loc *time.Location) *Generator {
	return &Generator{
		Query:     DefaultQuery(),
		Fetcher:   fetcher,
		Formatter: Formatter{Location: loc},
		Clock:     clockwork.NewRealClock(),
	}
}

// Generate fetches and renders the report. Every failure is recovered into
// a displayable message; no error reaches the caller.
func (g *Generator) Generate(ctx context.Context) Result {
	clock := g.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	start := clock.Now()

	result := g.generate(ctx)

	if g.Observer != nil {
		g.Observer.ObserveGeneration(result.Outcome, clock.Since(start), len(result.Features))
	}
	return result
}

func (g *Generator) generate(ctx context.Context) Result {
	u := g.Query.URL()
	logger := log.Logger.With("url", u)

	body, err := g.Fetcher.Fetch(ctx, u)
	if err != nil {
		logger.Error(MessageFetchFailure, "error", err, "message", failure.MessageOf(err).String())
		return Result{Text: Report(MessageFetchFailure), Outcome: OutcomeFetchFailure}
	}

	features, err := ParseFeatures(body)
	if err != nil {
		logger.Debug("no features in response", "error", err)
		return Result{Text: Report(MessageNoData), Outcome: OutcomeNoData}
	}

	logger.Debug("report generated", "features", len(features))
	return Result{
		Text:     g.Formatter.Format(features),
		Outcome:  OutcomeReport,
		Features: features,
	}
}
