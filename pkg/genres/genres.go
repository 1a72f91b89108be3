package genres

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// defaultNames is the externally defined genre enumeration, in its
// published order. Ids are 1-based positions in this list.
var defaultNames = []string{
	"Action", "Adventure", "Avant Garde", "Award Winning", "Boys Love",
	"Comedy", "Drama", "Fantasy", "Girls Love", "Gourmet", "Horror",
	"Mystery", "Romance", "Sci-Fi", "Slice of Life", "Sports",
	"Supernatural", "Suspense", "Ecchi", "Erotica", "Hentai",
}

// Table maps genre names to their small positive ids. It is an injected
// lookup, not something learned at runtime: names missing from the
// table are dropped by the mapper, never added.
type Table struct {
	ids map[string]int64
}

// Default returns the built-in enumeration.
func Default() Table {
	ids := make(map[string]int64, len(defaultNames))
	for i, name := range defaultNames {
		ids[name] = int64(i + 1)
	}
	return Table{ids: ids}
}

// FromMap builds a table from an explicit name -> id mapping.
func FromMap(m map[string]int64) Table {
	ids := make(map[string]int64, len(m))
	for name, id := range m {
		ids[name] = id
	}
	return Table{ids: ids}
}

// Load reads a genre table from a CSV with a "genre_id,name" header,
// for deployments whose store uses different ids than the default.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open genre table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		return Table{}, fmt.Errorf("read genre header: %w", err)
	}

	ids := make(map[string]int64)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read genre row: %w", err)
		}
		if len(row) < 2 {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		name := strings.TrimSpace(row[1])
		if name == "" {
			continue
		}
		ids[name] = id
	}
	if len(ids) == 0 {
		return Table{}, fmt.Errorf("genre table %s has no usable rows", path)
	}
	return Table{ids: ids}, nil
}

// Lookup returns the id for a genre name. Unrecognized names report ok
// = false and are silently dropped by callers.
func (t Table) Lookup(name string) (int64, bool) {
	id, ok := t.ids[name]
	return id, ok
}

// Len reports how many genres the table holds.
func (t Table) Len() int { return len(t.ids) }

// Entry is one (id, name) pair of the enumeration.
type Entry struct {
	ID   int64
	Name string
}

// All returns the enumeration sorted by id, for loading into the store's
// genres table.
func (t Table) All() []Entry {
	out := make([]Entry, 0, len(t.ids))
	for name, id := range t.ids {
		out = append(out, Entry{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
