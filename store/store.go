// Package store persists confirmed holdings, keyed by fund code.
//
// Two backends are available: a human readable JSON file, friendly to
// version control, and a SQLite database. [Open] picks one from the file
// extension.
package store

import (
	"path/filepath"
	"strings"

	"github.com/etnz/fundwatch"
)

// Open opens the holdings store at path. Files ending in ".db" or ".sqlite"
// are SQLite databases, anything else is a JSON file. A missing file is an
// empty store.
func Open(path string) (fundwatch.Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(path)
	default:
		return OpenJSON(path)
	}
}
