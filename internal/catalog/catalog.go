// Package catalog holds the bundled category table used when the metadata
// store is unreachable or has no entry for a category.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ArowuTest/category-proxy/internal/models"
)

//go:embed local-configs.json
var bundled []byte

// Table is an immutable category -> configuration mapping.
type Table struct {
	records map[string]models.ConfigRecord
}

var defaultTable = mustParse(bundled)

// Default returns the table built from the bundled local-configs.json.
func Default() *Table {
	return defaultTable
}

func mustParse(data []byte) *Table {
	t, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("catalog: bundled local-configs.json: %v", err))
	}
	return t
}

// Parse builds a table from a JSON object keyed by category. Entries without
// a collection are rejected.
func Parse(data []byte) (*Table, error) {
	var raw map[string]models.ConfigRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	records := make(map[string]models.ConfigRecord, len(raw))
	for key, rec := range raw {
		if rec.Collection == "" {
			return nil, fmt.Errorf("category %q has no collection", key)
		}
		rec.Category = key
		rec.Fields = append([]models.FieldDefinition(nil), rec.Fields...)
		records[key] = rec
	}
	return &Table{records: records}, nil
}

// Lookup returns the descriptor for category.
func (t *Table) Lookup(category string) (models.Descriptor, bool) {
	rec, ok := t.records[category]
	if !ok {
		return models.Descriptor{}, false
	}
	return rec.Descriptor(), true
}

// Record returns a copy of the full configuration for category.
func (t *Table) Record(category string) (models.ConfigRecord, bool) {
	rec, ok := t.records[category]
	if !ok {
		return models.ConfigRecord{}, false
	}
	rec.Fields = append([]models.FieldDefinition(nil), rec.Fields...)
	return rec, true
}

// Categories lists the known categories in sorted order.
func (t *Table) Categories() []string {
	out := make([]string, 0, len(t.records))
	for k := range t.records {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
