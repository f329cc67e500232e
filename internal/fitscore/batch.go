package fitscore

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spigell/scout-profile/internal/candidate"
	"github.com/spigell/scout-profile/internal/gate"
	"github.com/spigell/scout-profile/internal/profile"
)

// DefaultConcurrency bounds EvaluateAll when no limit is given.
const DefaultConcurrency = 4

// Assessment pairs a candidate with its result.
type Assessment struct {
	Candidate *candidate.Attributes `json:"candidate"`
	Result    Result                `json:"result"`
}

// Evaluate scores c only when the gate is unlocked.
func Evaluate(p *profile.Profile, g gate.Result, c *candidate.Attributes, now time.Time) Result {
	if !g.Unlocked {
		return NotAssessed()
	}
	return Score(p, c, now)
}

// EvaluateAll checks the gate once and scores every candidate with at most
// concurrency workers. Results keep the order of candidates. The only error
// is a cancelled ctx.
func EvaluateAll(ctx context.Context, p *profile.Profile, candidates []*candidate.Attributes, now time.Time, concurrency int) ([]Assessment, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	decision := gate.Check(p)
	out := make([]Assessment, len(candidates))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, c := range candidates {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			out[i] = Assessment{Candidate: c, Result: Evaluate(p, decision, c, now)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
