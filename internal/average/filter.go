package average

import (
	"fmt"
	"time"

	"github.com/wfm-tools/warmac/internal/models"
)

// Filters holds the query modifiers that decide which orders are admissible.
//
// MaxRank and Radiant are mutually exclusive; config validation rejects a
// query with both set before it reaches this package, and behavior is
// undefined if that precondition is violated. They never apply to the same
// item anyway: rank filtering concerns mods/arcanes, refinement filtering
// concerns relics.
type Filters struct {
	UseBuyers bool // Match "buy" orders instead of "sell" orders
	MaxRank   bool // Match the mod's max rank instead of unranked (0)
	Radiant   bool // Match "radiant" refinement instead of "intact"
	TimeRange int  // Maximum whole days since last_update, inclusive
}

// admits reports whether a single order satisfies every predicate. Predicates
// are checked in a fixed order (side, recency, rank, refinement) and
// short-circuit; an order rejected by an earlier predicate is never probed
// for later fields.
func admits(order *models.Order, meta *models.ItemMetadata, f Filters, now time.Time) (bool, error) {
	side := models.OrderTypeSell
	if f.UseBuyers {
		side = models.OrderTypeBuy
	}
	if order.OrderType != side {
		return false, nil
	}

	updated, err := time.Parse(time.RFC3339, order.LastUpdate)
	if err != nil {
		return false, fmt.Errorf("parse order last_update %q: %w", order.LastUpdate, err)
	}
	// Whole elapsed days, truncated: an order from exactly TimeRange days
	// ago is still admitted.
	if int(now.Sub(updated)/(24*time.Hour)) > f.TimeRange {
		return false, nil
	}

	if meta.IsModOrArcane {
		if order.ModRank == nil {
			return false, &FieldError{Field: "mod_rank"}
		}
		rank := 0
		if f.MaxRank {
			rank = meta.MaxRank
		}
		if *order.ModRank != rank {
			return false, nil
		}
	}

	if meta.IsRelic {
		if order.Subtype == nil {
			return false, &FieldError{Field: "subtype"}
		}
		subtype := models.SubtypeIntact
		if f.Radiant {
			subtype = models.SubtypeRadiant
		}
		if *order.Subtype != subtype {
			return false, nil
		}
	}

	return true, nil
}

// FilterPrices applies the admission predicates across all orders and
// collects the platinum prices of those admitted, preserving payload order.
// An empty result is not an error here; Compute raises ErrNoListings when
// aggregation is attempted over it.
//
// now must be captured once per query and reused for every call against the
// same payload so that all orders are judged at the same instant.
func FilterPrices(meta *models.ItemMetadata, orders []models.Order, f Filters, now time.Time) ([]int, error) {
	prices := make([]int, 0, len(orders))
	for i := range orders {
		ok, err := admits(&orders[i], meta, f, now)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", i, err)
		}
		if ok {
			prices = append(prices, orders[i].Platinum)
		}
	}
	return prices, nil
}
