// Package average implements the order-filtering and statistic-computation
// pipeline: the predicates that decide which marketplace listings are
// comparable, and the aggregation that turns the admissible prices into a
// single reported number.
//
// A listing is admissible when all four predicates hold:
//
//	side:       order_type matches the requested buy/sell side
//	recency:    last_update is at most TimeRange whole days old (inclusive)
//	mod rank:   rank equals max rank or 0, when the item is a mod/arcane
//	refinement: subtype is radiant or intact, when the item is a relic
//
// The reference instant for recency is captured once per query and passed
// in, so every listing in a query is judged against the same moment.
// The package is pure: it never logs, never prints, and performs no I/O.
package average

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Statistic identifies one of the supported aggregation functions.
type Statistic int

const (
	// Median is the default statistic: the middle price, or the mean of the
	// two middle prices for an even count. Robust against outlier listings.
	Median Statistic = iota
	// Mean is the arithmetic mean.
	Mean
	// Mode is the most frequent price; ties resolve to the value that
	// appears first in payload order.
	Mode
	// Harmonic is the harmonic mean. Undefined for zero prices.
	Harmonic
	// Geometric is the geometric mean. Zero prices yield 0.
	Geometric
)

var statisticNames = map[Statistic]string{
	Median:    "median",
	Mean:      "mean",
	Mode:      "mode",
	Harmonic:  "harmonic",
	Geometric: "geometric",
}

// StatisticNames returns the supported statistic names in help-text order.
func StatisticNames() []string {
	return []string{"median", "mean", "mode", "harmonic", "geometric"}
}

// ParseStatistic maps a user-supplied name to a Statistic.
func ParseStatistic(name string) (Statistic, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range statisticNames {
		if n == name {
			return s, nil
		}
	}
	return 0, &StatisticError{Name: name}
}

func (s Statistic) String() string {
	if name, ok := statisticNames[s]; ok {
		return name
	}
	return fmt.Sprintf("statistic(%d)", int(s))
}

// apply dispatches to the concrete aggregation. Every input is non-empty;
// Compute enforces that before calling.
func apply(prices []int, s Statistic) (float64, error) {
	switch s {
	case Median:
		return medianOf(prices), nil
	case Mean:
		return meanOf(prices), nil
	case Mode:
		return modeOf(prices), nil
	case Harmonic:
		return harmonicOf(prices)
	case Geometric:
		return geometricOf(prices), nil
	default:
		return 0, &StatisticError{Name: s.String()}
	}
}

func meanOf(prices []int) float64 {
	var sum float64
	for _, p := range prices {
		sum += float64(p)
	}
	return sum / float64(len(prices))
}

func medianOf(prices []int) float64 {
	sorted := make([]int, len(prices))
	copy(sorted, prices)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return (float64(sorted[mid-1]) + float64(sorted[mid])) / 2
}

// modeOf returns the most frequent price. Among equally frequent prices the
// one encountered first in input order wins, keeping the result stable for
// a given payload.
func modeOf(prices []int) float64 {
	counts := make(map[int]int, len(prices))
	for _, p := range prices {
		counts[p]++
	}

	best := 0
	for _, c := range counts {
		if c > best {
			best = c
		}
	}
	for _, p := range prices {
		if counts[p] == best {
			return float64(p)
		}
	}
	return float64(prices[0]) // unreachable for non-empty input
}

func harmonicOf(prices []int) (float64, error) {
	var recip float64
	for _, p := range prices {
		if p == 0 {
			return 0, ErrZeroPrice
		}
		recip += 1 / float64(p)
	}
	return float64(len(prices)) / recip, nil
}

// geometricOf computes exp(mean(ln p)) rather than the nth root of the raw
// product, which overflows for long price lists. A zero price makes the
// product zero, so the mean is 0 by definition rather than an error.
func geometricOf(prices []int) float64 {
	var logSum float64
	for _, p := range prices {
		if p == 0 {
			return 0
		}
		logSum += math.Log(float64(p))
	}
	return math.Exp(logSum / float64(len(prices)))
}
