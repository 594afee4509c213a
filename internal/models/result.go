package models

import (
	"errors"
	"strings"
)

// Result carries the outcome of one completed query: the computed statistic
// plus the auxiliary figures shown in verbose output. QueryID ties the
// result back to the API request that produced it in log output.
type Result struct {
	QueryID    string  `json:"query_id"`
	Item       string  `json:"item"`       // Normalized item identifier (e.g. "bite")
	Platform   string  `json:"platform"`   // Platform the orders were fetched for
	Statistic  string  `json:"statistic"`  // Name of the computed statistic
	TimeRange  int     `json:"time_range"` // Maximum order age in days
	Value      float64 `json:"value"`      // The statistic, rounded to one decimal
	MaxPrice   int     `json:"max_price"`
	MinPrice   int     `json:"min_price"`
	OrderCount int     `json:"order_count"`
}

// Validate checks that all result fields are valid.
func (r *Result) Validate() error {
	if r.Item == "" {
		return errors.New("result item must not be empty")
	}
	if r.Statistic == "" {
		return errors.New("result statistic must not be empty")
	}
	if r.OrderCount < 1 {
		return errors.New("result must be computed from at least one order")
	}
	if r.MinPrice > r.MaxPrice {
		return errors.New("min price must not exceed max price")
	}
	if r.Value < 0 {
		return errors.New("result value must not be negative")
	}
	return nil
}

// DisplayName renders the normalized item identifier back into a
// human-readable title, e.g. "axi_a15_relic" becomes "Axi A15 Relic".
func (r *Result) DisplayName() string {
	name := strings.ReplaceAll(r.Item, "_", " ")
	name = strings.ReplaceAll(name, " and ", " & ")
	return strings.Title(name) //nolint:staticcheck // ASCII item names only
}
