package fundwatch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// unitPlaces is the number of decimal places of back-calculated units. It
// matches the 2-decimal amounts of the export format.
const unitPlaces = 2

// Resolver completes extracted candidates with a fund code, a display name and
// the number of units held.
//
// Its zero value is not usable: Search and Valuation are required.
type Resolver struct {
	Search    Searcher
	Valuation Valuer

	// Concurrency bounds the number of candidates resolved at once. Zero or
	// negative means no bound.
	Concurrency int

	// Log receives one event per resolved candidate. The zero value logs nothing.
	Log zerolog.Logger
}

// Parse extracts candidates from text and resolves them. See [Extract] and
// [Resolver.Resolve].
func (r *Resolver) Parse(ctx context.Context, text string) []Candidate {
	return r.Resolve(ctx, Extract(text))
}

// Resolve resolves all candidates concurrently and returns them in input
// order once every one of them reached a terminal status.
//
// Pending candidates are searched by their raw line when they have no code,
// then their units are back-calculated from their market value and the
// fund's reference price. Matched candidates without a name get their name
// backfilled. Others are returned unchanged.
//
// Resolve never fails: each candidate carries its own error, and a failure
// never affects another candidate.
func (r *Resolver) Resolve(ctx context.Context, candidates []Candidate) []Candidate {
	resolved := make([]Candidate, len(candidates))
	var g errgroup.Group
	if r.Concurrency > 0 {
		g.SetLimit(r.Concurrency)
	}
	for i, c := range candidates {
		// each task owns resolved[i] exclusively.
		g.Go(func() error {
			resolved[i] = r.resolveOne(ctx, c)
			return nil
		})
	}
	_ = g.Wait() // tasks never return errors
	return resolved
}

// resolveOne dispatches a single candidate on its current state.
func (r *Resolver) resolveOne(ctx context.Context, c Candidate) Candidate {
	switch s := c.State().(type) {
	case Pending:
		c = r.resolvePending(ctx, c.searching())
		r.logOutcome(c)
		return c
	case Matched:
		if s.Name == "" {
			return r.backfillName(ctx, c)
		}
	}
	return c
}

// resolvePending runs the search and the unit back-calculation for a candidate
// in the searching state. It always returns a terminal candidate.
func (r *Resolver) resolvePending(ctx context.Context, c Candidate) (out Candidate) {
	defer func() {
		if p := recover(); p != nil {
			out = c.failed(ErrLookupFailure, fmt.Errorf("panic: %v", p))
		}
	}()

	if _, ok := c.Code(); !ok {
		results, err := r.Search.Search(ctx, c.RawLine())
		if err != nil {
			return c.failed(ErrLookupFailure, err)
		}
		if len(results) == 0 {
			return c.failed(ErrNoMatch, nil)
		}
		// the first result is the best one, no further disambiguation.
		best := results[0]
		c = c.identified(best.Code, best.Name)
	}
	code, ok := c.Code()
	if !ok {
		return c.failed(ErrNoMatch, nil)
	}

	value, ok := c.MarketValue()
	if !ok {
		return c.matched(Quantity{}, false)
	}

	v, err := r.Valuation.Valuation(ctx, code)
	if err != nil {
		return c.failed(ErrPriceUnavailable, err)
	}
	price, err := v.Reference()
	if err != nil {
		return c.failed(ErrPriceUnavailable, err)
	}
	if c.Name() == "" {
		c = c.identified(code, v.Name)
	}
	return c.matched(value.DivRound(price, unitPlaces), true)
}

// backfillName fetches the display name of a matched candidate. Nothing else
// changes, and a failed lookup leaves the candidate as is.
func (r *Resolver) backfillName(ctx context.Context, c Candidate) (out Candidate) {
	out = c
	defer func() {
		if p := recover(); p != nil {
			r.Log.Warn().Str("key", c.Key()).Interface("panic", p).Msg("name backfill panicked")
			out = c
		}
	}()
	code, _ := c.Code()
	v, err := r.Valuation.Valuation(ctx, code)
	if err != nil {
		r.Log.Debug().Err(err).Str("key", c.Key()).Str("code", string(code)).Msg("name backfill failed")
		return c
	}
	if v.Name == "" {
		return c
	}
	return c.withName(v.Name)
}

func (r *Resolver) logOutcome(c Candidate) {
	code, _ := c.Code()
	if err := c.Err(); err != nil {
		r.Log.Info().Err(err).Str("key", c.Key()).Str("line", c.RawLine()).Msg("candidate failed")
		return
	}
	units, _ := c.Units()
	r.Log.Debug().Str("key", c.Key()).Str("code", string(code)).Str("name", c.Name()).
		Stringer("units", units).Msg("candidate matched")
}
