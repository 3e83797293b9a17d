package fundwatch

import (
	"errors"
	"fmt"
)

// Holding is a confirmed position in a fund, as persisted.
type Holding struct {
	Code    Code
	Units   Quantity
	Cost    Money // total cost basis, only meaningful if HasCost
	HasCost bool
}

// Validate checks the holding before it is persisted.
func (h Holding) Validate() error {
	if err := h.Code.Validate(); err != nil {
		return err
	}
	if !h.Units.IsPositive() {
		return fmt.Errorf("holding %s: units must be positive, got %s", h.Code, h.Units)
	}
	return nil
}

// Store persists holdings keyed by fund code.
type Store interface {
	// List returns all holdings, in insertion order.
	List() ([]Holding, error)
	// Put inserts h, or replaces the holding with the same code.
	Put(h Holding) error
	// Remove deletes the holding with code. Removing an unknown code is not an error.
	Remove(code Code) error
}

// HoldingFrom converts an importable candidate into a holding. The cost is
// rounded to 2 decimals.
func HoldingFrom(c Candidate) (Holding, error) {
	if c.Status() != StatusMatched {
		return Holding{}, fmt.Errorf("candidate %s is %s, not matched", c.Key(), c.Status())
	}
	code, _ := c.Code()
	units, ok := c.Units()
	if !ok || !units.IsPositive() {
		return Holding{}, fmt.Errorf("candidate %s has no units", c.Key())
	}
	h := Holding{Code: code, Units: units}
	if cost, ok := c.CostBasis(); ok {
		h.Cost, h.HasCost = cost.Round(2), true
	}
	return h, nil
}

// Import persists every importable candidate into s and returns how many
// were stored. Failed or incomplete candidates are skipped.
func Import(s Store, candidates []Candidate) (int, error) {
	var n int
	var errs error
	for _, c := range candidates {
		if !c.Importable() {
			continue
		}
		h, err := HoldingFrom(c)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if err := s.Put(h); err != nil {
			errs = errors.Join(errs, fmt.Errorf("cannot store %s: %w", h.Code, err))
			continue
		}
		n++
	}
	return n, errs
}
