package renderer

import (
	"github.com/etnz/fundwatch"
)

// Preview is the review table of a parse run, one row per candidate.
type Preview struct {
	Rows    []PreviewRow `json:"rows"`
	Matched int          `json:"matched"`
	Failed  int          `json:"failed"`
}

// PreviewRow is a single candidate, with its values already formatted.
type PreviewRow struct {
	Key    string `json:"key"`
	Line   string `json:"line"`
	Status string `json:"status"`
	Code   string `json:"code,omitempty"`
	Name   string `json:"name,omitempty"`
	Units  string `json:"units,omitempty"`
	Cost   string `json:"cost,omitempty"`
	Value  string `json:"value,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewPreview builds the preview of resolved candidates.
func NewPreview(candidates []fundwatch.Candidate) *Preview {
	p := &Preview{Rows: make([]PreviewRow, 0, len(candidates))}
	for _, c := range candidates {
		row := PreviewRow{
			Key:    c.Key(),
			Line:   cell(c.RawLine()),
			Status: c.Status().String(),
			Name:   cell(c.Name()),
			Error:  cell(c.ErrorDetail()),
		}
		if code, ok := c.Code(); ok {
			row.Code = string(code)
		}
		if units, ok := c.Units(); ok {
			row.Units = units.String()
		}
		if cost, ok := c.CostBasis(); ok {
			row.Cost = cost.String()
		}
		if value, ok := c.MarketValue(); ok {
			row.Value = value.String()
		}
		switch c.Status() {
		case fundwatch.StatusMatched:
			p.Matched++
		case fundwatch.StatusFailed:
			p.Failed++
		}
		p.Rows = append(p.Rows, row)
	}
	return p
}
