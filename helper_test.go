package fundwatch

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}

// fakeSearcher answers searches from a map of query to results. Queries in
// fail return an error, queries in panics panic.
type fakeSearcher struct {
	results map[string][]SearchResult
	fail    map[string]bool
	panics  map[string]bool
	jitter  bool

	mu    sync.Mutex
	calls []string
}

func (f *fakeSearcher) Search(ctx context.Context, query string) ([]SearchResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	f.mu.Unlock()
	if f.jitter {
		sleepRandom()
	}
	if f.panics[query] {
		panic("search exploded")
	}
	if f.fail[query] {
		return nil, errors.New("connection reset")
	}
	return f.results[query], nil
}

func (f *fakeSearcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// fakeValuer answers valuations from a map of code to valuation. Codes in
// fail return an error.
type fakeValuer struct {
	valuations map[Code]Valuation
	fail       map[Code]bool
	jitter     bool

	mu    sync.Mutex
	calls []Code
}

func (f *fakeValuer) Valuation(ctx context.Context, code Code) (Valuation, error) {
	f.mu.Lock()
	f.calls = append(f.calls, code)
	f.mu.Unlock()
	if f.jitter {
		sleepRandom()
	}
	if f.fail[code] {
		return Valuation{}, errors.New("connection refused")
	}
	v, ok := f.valuations[code]
	if !ok {
		return Valuation{}, errors.New("fund not found")
	}
	return v, nil
}

func (f *fakeValuer) Calls() []Code {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Code(nil), f.calls...)
}

func sleepRandom() {
	time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
}

// memStore is an in-memory Store.
type memStore struct {
	holdings []Holding
	fail     bool
}

func (m *memStore) List() ([]Holding, error) { return m.holdings, nil }

func (m *memStore) Put(h Holding) error {
	if m.fail {
		return errors.New("disk full")
	}
	for i := range m.holdings {
		if m.holdings[i].Code == h.Code {
			m.holdings[i] = h
			return nil
		}
	}
	m.holdings = append(m.holdings, h)
	return nil
}

func (m *memStore) Remove(code Code) error {
	for i := range m.holdings {
		if m.holdings[i].Code == code {
			m.holdings = append(m.holdings[:i], m.holdings[i+1:]...)
			return nil
		}
	}
	return nil
}
