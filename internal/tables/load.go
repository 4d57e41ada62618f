package tables

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rpgo/irs-calculator/internal/domain"
)

// DefaultSQLiteTable is the table name read when a SQLite file is given as a path.
const DefaultSQLiteTable = "default"

// Load picks a loader from the file extension. SQLite paths may select a named
// table with a "#name" suffix, e.g. "brackets.db#2025".
func Load(ctx context.Context, path string) (*domain.BracketTable, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no bracket table path given", domain.ErrConfiguration)
	}
	file, name, _ := strings.Cut(path, "#")
	switch strings.ToLower(filepath.Ext(file)) {
	case ".csv":
		return LoadCSV(file)
	case ".yaml", ".yml":
		return LoadYAML(file)
	case ".db", ".sqlite", ".sqlite3":
		if name == "" {
			name = DefaultSQLiteTable
		}
		store, err := OpenSQLiteStore(ctx, file)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Load(ctx, name)
	default:
		return nil, fmt.Errorf("%w: unsupported bracket table format %q", domain.ErrConfiguration, filepath.Ext(file))
	}
}
