package models

import (
	"errors"
	"fmt"
)

// RankNotApplicable is the MaxRank sentinel for items that are not mods or
// arcanes.
const RankNotApplicable = -1

// ItemMetadata classifies the queried item, derived once per query from the
// item tags in the fetched payload. The relic and mod/arcane flags are not
// guaranteed mutually exclusive by the API's data model, so consumers must
// guard each branch independently.
type ItemMetadata struct {
	IsRelic       bool `json:"is_relic"`         // Item carries the "relic" tag
	IsModOrArcane bool `json:"is_mod_or_arcane"` // Item carries the "mod" or "arcane_enhancement" tag
	MaxRank       int  `json:"max_rank"`         // Highest rank for mods/arcanes, RankNotApplicable otherwise
}

// Validate checks that the classification is internally consistent.
func (m *ItemMetadata) Validate() error {
	if m.IsModOrArcane {
		if m.MaxRank < 0 {
			return fmt.Errorf("mod/arcane item must have a non-negative max rank, got %d", m.MaxRank)
		}
		return nil
	}
	if m.MaxRank != RankNotApplicable {
		return errors.New("max rank must be the not-applicable sentinel for non-mod items")
	}
	return nil
}
