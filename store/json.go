package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/etnz/fundwatch"
)

// JSON is a store backed by a single JSON file holding a list of
// holdings:
//
//	[{"code":"001186","share":"4000","cost":"15000"}]
//
// The whole file is rewritten on every change.
type JSON struct {
	path string

	mu       sync.Mutex
	holdings []fundwatch.Holding
}

// jholding is the holding as read from or written to the file.
type jholding struct {
	Code  string             `json:"code"`
	Share fundwatch.Quantity `json:"share"`
	Cost  *fundwatch.Money   `json:"cost,omitempty"`
}

// OpenJSON loads the JSON store at path. A missing file is an empty store.
func OpenJSON(path string) (*JSON, error) {
	s := &JSON{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read holdings file %q: %w", path, err)
	}
	var jholdings []jholding
	if err := json.Unmarshal(data, &jholdings); err != nil {
		return nil, fmt.Errorf("format error %q: %w", path, err)
	}
	for i, jh := range jholdings {
		h := fundwatch.Holding{Code: fundwatch.Code(jh.Code), Units: jh.Share}
		if jh.Cost != nil {
			h.Cost, h.HasCost = *jh.Cost, true
		}
		if err := h.Code.Validate(); err != nil {
			return nil, fmt.Errorf("format error %q: holding #%d: %w", path, i, err)
		}
		s.holdings = append(s.holdings, h)
	}
	return s, nil
}

// List implements fundwatch.Store.
func (s *JSON) List() ([]fundwatch.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.holdings), nil
}

// Put implements fundwatch.Store.
func (s *JSON) Put(h fundwatch.Holding) error {
	if err := h.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.holdings, func(x fundwatch.Holding) bool { return x.Code == h.Code })
	if i >= 0 {
		s.holdings[i] = h
	} else {
		s.holdings = append(s.holdings, h)
	}
	return s.flush()
}

// Remove implements fundwatch.Store.
func (s *JSON) Remove(code fundwatch.Code) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holdings = slices.DeleteFunc(s.holdings, func(x fundwatch.Holding) bool { return x.Code == code })
	return s.flush()
}

// flush rewrites the file, through a temp file so that a failed write never
// leaves a truncated store behind.
func (s *JSON) flush() error {
	jholdings := make([]jholding, 0, len(s.holdings))
	for _, h := range s.holdings {
		jh := jholding{Code: string(h.Code), Share: h.Units}
		if h.HasCost {
			cost := h.Cost
			jh.Cost = &cost
		}
		jholdings = append(jholdings, jh)
	}
	data, err := json.MarshalIndent(jholdings, "", "  ")
	if err != nil {
		return fmt.Errorf("persist error: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".holdings-*")
	if err != nil {
		return fmt.Errorf("persist error: %w", err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("persist error: cannot write to file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("persist error: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}
