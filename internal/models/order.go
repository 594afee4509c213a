// Package models defines the core domain entities for warmac.
// These models represent marketplace orders, the classification of the
// queried item, and the computed price statistic. All models include
// built-in validation to ensure data integrity throughout the pipeline.
//
// Terminology (matching warframe.market's own naming):
//   - Order: a single buy or sell listing for an item, priced in platinum.
//   - Subtype: a relic's refinement state ("intact" or "radiant").
//   - Mod rank: a mod or arcane's upgrade level; 0 is unranked.
package models

import (
	"errors"
	"fmt"
)

// Order side values used by the warframe.market API.
const (
	OrderTypeBuy  = "buy"
	OrderTypeSell = "sell"
)

// Relic refinement subtypes relevant to filtering. The API also reports
// "exceptional" and "flawless", which no query mode selects.
const (
	SubtypeIntact  = "intact"
	SubtypeRadiant = "radiant"
)

// Order represents a single trade listing retrieved from the marketplace.
// Orders are read-only snapshots scoped to one query; they are never
// mutated, cached, or carried across requests.
//
// ModRank and Subtype are pointers because the API only includes them for
// mods/arcanes and relics respectively. A nil value where the item's
// classification requires one is a data-integrity failure, not a default.
type Order struct {
	OrderType  string  `json:"order_type"`        // "buy" or "sell"
	Platinum   int     `json:"platinum"`          // Price in platinum, never negative
	LastUpdate string  `json:"last_update"`       // ISO-8601 timestamp of the last edit
	ModRank    *int    `json:"mod_rank,omitempty"` // Present for mods/arcanes (0..max rank)
	Subtype    *string `json:"subtype,omitempty"`  // Present for relics ("intact", "radiant", ...)
}

// Validate checks that all order fields are valid.
func (o *Order) Validate() error {
	if o.OrderType != OrderTypeBuy && o.OrderType != OrderTypeSell {
		return fmt.Errorf("order type must be %q or %q, got %q", OrderTypeBuy, OrderTypeSell, o.OrderType)
	}
	if o.Platinum < 0 {
		return errors.New("platinum price must not be negative")
	}
	if o.LastUpdate == "" {
		return errors.New("last update timestamp must not be empty")
	}
	if o.ModRank != nil && *o.ModRank < 0 {
		return errors.New("mod rank must not be negative")
	}
	return nil
}
