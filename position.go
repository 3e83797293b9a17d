package fundwatch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Position is a holding valued with the latest valuation of its fund.
type Position struct {
	Holding
	Valuation Valuation
	Err       error // set when the valuation could not be fetched
}

// Valuate fetches the valuation of every holding concurrently and returns
// the positions in the same order. A failed valuation is recorded in the
// position's Err, it does not stop the others.
func Valuate(ctx context.Context, v Valuer, holdings []Holding, concurrency int) []Position {
	positions := make([]Position, len(holdings))
	var g errgroup.Group
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, h := range holdings {
		g.Go(func() error {
			val, err := v.Valuation(ctx, h.Code)
			positions[i] = Position{Holding: h, Valuation: val, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return positions
}

// Name returns the fund display name, or its code when unknown.
func (p Position) Name() string {
	if p.Valuation.Name != "" {
		return p.Valuation.Name
	}
	return string(p.Code)
}

// MarketValue is the estimated value of the position: estimated price × units.
func (p Position) MarketValue() (Money, bool) {
	price, err := p.Valuation.EstimatedPrice()
	if err != nil || p.Err != nil {
		return Money{}, false
	}
	return price.Mul(p.Units), true
}

// ReferenceValue is the value at the latest official price: reference price × units.
func (p Position) ReferenceValue() (Money, bool) {
	price, err := p.Valuation.Reference()
	if err != nil || p.Err != nil {
		return Money{}, false
	}
	return price.Mul(p.Units), true
}

// DayGain is the estimated gain since the reference price.
func (p Position) DayGain() (Money, bool) {
	mv, ok := p.MarketValue()
	if !ok {
		return Money{}, false
	}
	ref, ok := p.ReferenceValue()
	if !ok {
		return Money{}, false
	}
	return mv.Sub(ref), true
}

// TotalGain is the estimated gain since purchase: market value - cost.
func (p Position) TotalGain() (Money, bool) {
	if !p.HasCost || p.Cost.IsZero() {
		return Money{}, false
	}
	mv, ok := p.MarketValue()
	if !ok {
		return Money{}, false
	}
	return mv.Sub(p.Cost), true
}

// GainRate is the total gain relative to cost.
func (p Position) GainRate() (Percent, bool) {
	gain, ok := p.TotalGain()
	if !ok {
		return 0, false
	}
	return gain.Ratio(p.Cost), true
}

// Summary totals a list of positions. Positions lacking a figure are left out
// of that figure's total.
type Summary struct {
	Positions   int
	MarketValue Money
	DayGain     Money
	TotalGain   Money
}

// Summarize totals positions.
func Summarize(positions []Position) Summary {
	s := Summary{
		Positions:   len(positions),
		MarketValue: M(0, Currency),
		DayGain:     M(0, Currency),
		TotalGain:   M(0, Currency),
	}
	for _, p := range positions {
		if v, ok := p.MarketValue(); ok {
			s.MarketValue = s.MarketValue.Add(v)
		}
		if v, ok := p.DayGain(); ok {
			s.DayGain = s.DayGain.Add(v)
		}
		if v, ok := p.TotalGain(); ok {
			s.TotalGain = s.TotalGain.Add(v)
		}
	}
	return s
}
