package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/etnz/fundwatch"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS holdings (
	code  TEXT PRIMARY KEY,
	share TEXT NOT NULL,
	cost  TEXT
)`

// SQLite is a store backed by a SQLite database. Amounts are stored as
// decimal strings to stay exact.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens, and creates if needed, the SQLite store at path.
func OpenSQLite(path string) (*SQLite, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open holdings database %q: %w", path, err)
	}
	// a single writer, sqlite serializes them anyway.
	conn.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create holdings schema in %q: %w", path, err)
	}
	return &SQLite{conn: conn}, nil
}

// Close closes the database.
func (s *SQLite) Close() error { return s.conn.Close() }

// List implements fundwatch.Store.
func (s *SQLite) List() ([]fundwatch.Holding, error) {
	rows, err := s.conn.Query(`SELECT code, share, cost FROM holdings ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	var holdings []fundwatch.Holding
	for rows.Next() {
		var code, share string
		var cost sql.NullString
		if err := rows.Scan(&code, &share, &cost); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		units, err := fundwatch.ParseQuantity(share)
		if err != nil {
			return nil, fmt.Errorf("holding %s: invalid share %q: %w", code, share, err)
		}
		h := fundwatch.Holding{Code: fundwatch.Code(code), Units: units}
		if cost.Valid {
			h.Cost, err = fundwatch.ParseMoney(cost.String, fundwatch.Currency)
			if err != nil {
				return nil, fmt.Errorf("holding %s: invalid cost %q: %w", code, cost.String, err)
			}
			h.HasCost = true
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// Put implements fundwatch.Store.
func (s *SQLite) Put(h fundwatch.Holding) error {
	if err := h.Validate(); err != nil {
		return err
	}
	var cost sql.NullString
	if h.HasCost {
		cost = sql.NullString{String: h.Cost.Decimal().String(), Valid: true}
	}
	_, err := s.conn.Exec(`INSERT INTO holdings (code, share, cost) VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET share = excluded.share, cost = excluded.cost`,
		string(h.Code), h.Units.Decimal().String(), cost)
	if err != nil {
		return fmt.Errorf("failed to store holding %s: %w", h.Code, err)
	}
	return nil
}

// Remove implements fundwatch.Store.
func (s *SQLite) Remove(code fundwatch.Code) error {
	if _, err := s.conn.Exec(`DELETE FROM holdings WHERE code = ?`, string(code)); err != nil {
		return fmt.Errorf("failed to remove holding %s: %w", code, err)
	}
	return nil
}

