package fundwatch

import (
	"errors"
	"fmt"
)

// Status is the coarse resolution status of a [Candidate].
type Status int

const (
	StatusPending Status = iota
	StatusSearching
	StatusMatched
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSearching:
		return "searching"
	case StatusMatched:
		return "matched"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Terminal reports whether no further transition can happen from s.
func (s Status) Terminal() bool { return s == StatusMatched || s == StatusFailed }

// State is the resolution state of a [Candidate]. It is one of [Pending],
// [Searching], [Matched] or [Failed].
type State interface {
	Status() Status
	isState()
}

// Pending is the state of a freshly extracted candidate.
type Pending struct{}

// Searching is the state of a candidate being resolved.
type Searching struct{}

// Matched is the state of a candidate resolved to a fund.
type Matched struct {
	Code Code
	Name string
	// Units is the back-calculated number of units held. It is only set
	// when the candidate carried a market value.
	Units    Quantity
	HasUnits bool
}

// Failed is the state of a candidate that could not be resolved.
type Failed struct {
	Err error
}

func (Pending) Status() Status   { return StatusPending }
func (Searching) Status() Status { return StatusSearching }
func (Matched) Status() Status   { return StatusMatched }
func (Failed) Status() Status    { return StatusFailed }

func (Pending) isState()   {}
func (Searching) isState() {}
func (Matched) isState()   {}
func (Failed) isState()    {}

// Candidate is a holding statement extracted from text, along with its
// resolution state.
//
// Candidate is a value type: transitions return a new Candidate and leave the
// receiver untouched.
type Candidate struct {
	key     string
	rawLine string

	code Code // "" when the source did not carry one.
	name string

	value    Money // market value
	hasValue bool
	cost     Money // cost basis: value - gain
	hasCost  bool

	state State
}

// NewNameCandidate returns a pending candidate with neither code nor market
// value: resolution searches rawLine as a fund name.
func NewNameCandidate(key, rawLine string) Candidate {
	return Candidate{key: key, rawLine: rawLine, state: Pending{}}
}

// NewCodeCandidate returns a candidate already matched to code but without a
// display name. Resolution only backfills its name.
func NewCodeCandidate(key string, code Code) Candidate {
	return Candidate{key: key, rawLine: string(code), code: code, state: Matched{Code: code}}
}

// newStatementCandidate returns a pending candidate for a "code value gain" statement.
func newStatementCandidate(key, rawLine string, code Code, value, gain Money) Candidate {
	return Candidate{
		key:      key,
		rawLine:  rawLine,
		code:     code,
		value:    value,
		hasValue: true,
		cost:     value.Sub(gain),
		hasCost:  true,
		state:    Pending{},
	}
}

// Key identifies the candidate within a single parse run.
func (c Candidate) Key() string { return c.key }

// RawLine is the source line the candidate was extracted from.
func (c Candidate) RawLine() string { return c.rawLine }

// State returns the resolution state.
func (c Candidate) State() State {
	if c.state == nil {
		return Pending{}
	}
	return c.state
}

// Status returns the coarse resolution status.
func (c Candidate) Status() Status { return c.State().Status() }

// Code returns the fund code, if known.
func (c Candidate) Code() (Code, bool) {
	if m, ok := c.state.(Matched); ok {
		return m.Code, true
	}
	return c.code, c.code != ""
}

// Name returns the fund display name, or "" if unknown.
func (c Candidate) Name() string {
	if m, ok := c.state.(Matched); ok && m.Name != "" {
		return m.Name
	}
	return c.name
}

// MarketValue returns the market value read from the source line.
func (c Candidate) MarketValue() (Money, bool) { return c.value, c.hasValue }

// CostBasis returns the total cost basis, computed as market value minus gain.
func (c Candidate) CostBasis() (Money, bool) { return c.cost, c.hasCost }

// Units returns the back-calculated number of units held. It is only set on
// matched candidates that carried a market value.
func (c Candidate) Units() (Quantity, bool) {
	if m, ok := c.state.(Matched); ok {
		return m.Units, m.HasUnits
	}
	return Quantity{}, false
}

// Err returns the failure reason of a failed candidate, nil otherwise.
func (c Candidate) Err() error {
	if f, ok := c.state.(Failed); ok {
		return f.Err
	}
	return nil
}

// ErrorDetail returns the human readable failure reason, "" unless failed.
func (c Candidate) ErrorDetail() string {
	if err := c.Err(); err != nil {
		return err.Error()
	}
	return ""
}

// Importable reports whether the candidate can be persisted as a holding:
// matched, with a positive number of units.
func (c Candidate) Importable() bool {
	units, ok := c.Units()
	return c.Status() == StatusMatched && ok && units.IsPositive()
}

// searching moves a pending candidate to the searching state.
func (c Candidate) searching() Candidate {
	c.state = Searching{}
	return c
}

// identified records the result of a fund search.
func (c Candidate) identified(code Code, name string) Candidate {
	c.code = code
	if name != "" {
		c.name = name
	}
	return c
}

// matched moves the candidate to the matched state. It must have a code.
func (c Candidate) matched(units Quantity, hasUnits bool) Candidate {
	if c.code == "" {
		panic("matched candidate without a fund code")
	}
	c.state = Matched{Code: c.code, Name: c.name, Units: units, HasUnits: hasUnits}
	return c
}

// withName sets the display name without changing anything else.
func (c Candidate) withName(name string) Candidate {
	c.name = name
	if m, ok := c.state.(Matched); ok {
		m.Name = name
		c.state = m
	}
	return c
}

// failed moves the candidate to the failed state.
func (c Candidate) failed(kind, cause error) Candidate {
	if kind == nil {
		kind = errors.New("unknown failure")
	}
	c.state = Failed{Err: &ResolveError{Kind: kind, Cause: cause}}
	return c
}

func (c Candidate) String() string {
	code, _ := c.Code()
	return fmt.Sprintf("%s %s %s %q", c.key, c.Status(), code, c.rawLine)
}
