package renderer

import (
	"github.com/etnz/fundwatch"
)

// Holdings is the live holdings table.
type Holdings struct {
	AsOf        string       `json:"asOf,omitempty"`
	MarketValue string       `json:"marketValue"`
	DayGain     string       `json:"dayGain"`
	TotalGain   string       `json:"totalGain"`
	Rows        []HoldingRow `json:"rows"`
}

// HoldingRow is a single position, with its values already formatted.
// Figures that cannot be computed are left empty.
type HoldingRow struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Units       string `json:"units"`
	Estimate    string `json:"estimate,omitempty"`
	Change      string `json:"change,omitempty"`
	MarketValue string `json:"marketValue,omitempty"`
	DayGain     string `json:"dayGain,omitempty"`
	Cost        string `json:"cost,omitempty"`
	TotalGain   string `json:"totalGain,omitempty"`
	GainRate    string `json:"gainRate,omitempty"`
	Error       string `json:"error,omitempty"`
}

// NewHoldings builds the holdings table from valued positions.
func NewHoldings(positions []fundwatch.Position) *Holdings {
	s := fundwatch.Summarize(positions)
	h := &Holdings{
		MarketValue: s.MarketValue.String(),
		DayGain:     s.DayGain.SignedString(),
		TotalGain:   s.TotalGain.SignedString(),
		Rows:        make([]HoldingRow, 0, len(positions)),
	}
	for _, p := range positions {
		row := HoldingRow{
			Code:  string(p.Code),
			Name:  cell(p.Name()),
			Units: p.Units.String(),
		}
		if p.HasCost {
			row.Cost = p.Cost.String()
		}
		if p.Err != nil {
			row.Error = cell(p.Err.Error())
			h.Rows = append(h.Rows, row)
			continue
		}
		if p.Valuation.EstimatedAt > h.AsOf {
			h.AsOf = p.Valuation.EstimatedAt
		}
		if price, err := p.Valuation.EstimatedPrice(); err == nil {
			row.Estimate = price.Decimal().StringFixed(4)
		}
		if change, err := p.Valuation.Change(); err == nil {
			row.Change = change.SignedString()
		}
		if v, ok := p.MarketValue(); ok {
			row.MarketValue = v.String()
		}
		if v, ok := p.DayGain(); ok {
			row.DayGain = v.SignedString()
		}
		if v, ok := p.TotalGain(); ok {
			row.TotalGain = v.SignedString()
		}
		if v, ok := p.GainRate(); ok {
			row.GainRate = "(" + v.SignedString() + ")"
		}
		h.Rows = append(h.Rows, row)
	}
	return h
}
