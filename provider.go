package fundwatch

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SearchResult is a single hit returned by a fund search.
type SearchResult struct {
	Code     Code
	Name     string
	Category string
}

// Searcher finds funds from a free-text query. Results are ordered best
// match first. No match is an empty list, not an error.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// Valuation is the latest valuation published for a fund.
//
// Prices are kept as published (decimal strings) so that callers decide how
// to handle missing or malformed values.
type Valuation struct {
	Code           Code
	Name           string
	ReferenceDate  string // date of the reference unit price, "2006-01-02"
	ReferencePrice string // latest official unit price
	Estimate       string // intraday estimated unit price
	EstimateChange string // estimated change since the reference, in percent
	EstimatedAt    string // time of the estimate, "2006-01-02 15:04"
}

// Valuer returns the latest valuation of a fund.
type Valuer interface {
	Valuation(ctx context.Context, code Code) (Valuation, error)
}

// Reference returns the reference unit price. It fails if the price is
// missing, not a number or not strictly positive.
func (v Valuation) Reference() (Money, error) {
	return positivePrice("reference price", v.ReferencePrice)
}

// EstimatedPrice returns the intraday estimated unit price.
func (v Valuation) EstimatedPrice() (Money, error) {
	return positivePrice("estimated price", v.Estimate)
}

// Change returns the estimated change in percent.
func (v Valuation) Change() (Percent, error) { return ParsePercent(v.EstimateChange) }

// AsOf parses the estimate timestamp, in China Standard Time.
func (v Valuation) AsOf() (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", v.EstimatedAt, chinaTime)
}

var chinaTime = time.FixedZone("CST", 8*3600)

func positivePrice(what, s string) (Money, error) {
	if s == "" {
		return Money{}, fmt.Errorf("missing %s", what)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid %s %q: %w", what, s, err)
	}
	if !d.IsPositive() {
		return Money{}, fmt.Errorf("invalid %s %q: must be positive", what, s)
	}
	return Money{value: d, cur: Currency}, nil
}
