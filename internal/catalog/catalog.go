// Package catalog holds the curated Jupiter Farms property list. The data is
// compiled into the binary and loaded once; it has no lifecycle beyond
// process start.
package catalog

import (
	_ "embed"
	"encoding/json"

	"homeventure/internal/domain"
)

//go:embed properties.json
var raw []byte

var (
	properties []domain.Property
	byID       map[int64]domain.Property
)

func init() {
	if err := json.Unmarshal(raw, &properties); err != nil {
		panic("catalog: bad embedded properties.json: " + err.Error())
	}
	byID = make(map[int64]domain.Property, len(properties))
	for _, p := range properties {
		byID[p.ID] = p
	}
}

// All returns the catalog in embed order. Callers must not mutate the slice.
func All() []domain.Property { return properties }

// Get looks up a catalog property by id.
func Get(id int64) (domain.Property, bool) {
	p, ok := byID[id]
	return p, ok
}

// Len reports the catalog size.
func Len() int { return len(properties) }
