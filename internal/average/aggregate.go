package average

import "math"

// Compute aggregates a filtered price list into the requested statistic,
// rounded to one decimal place to match platinum pricing granularity.
// An empty price list returns ErrNoListings; a harmonic mean over a list
// containing zero returns ErrZeroPrice.
func Compute(prices []int, stat Statistic) (float64, error) {
	if len(prices) == 0 {
		return 0, ErrNoListings
	}
	value, err := apply(prices, stat)
	if err != nil {
		return 0, err
	}
	return math.Round(value*10) / 10, nil
}

// Summary returns the auxiliary figures reported in verbose output: the
// highest price, the lowest price, and the number of admitted orders.
// The returned statistic itself is unaffected by these.
func Summary(prices []int) (maxPrice, minPrice, count int) {
	if len(prices) == 0 {
		return 0, 0, 0
	}
	maxPrice, minPrice = prices[0], prices[0]
	for _, p := range prices[1:] {
		if p > maxPrice {
			maxPrice = p
		}
		if p < minPrice {
			minPrice = p
		}
	}
	return maxPrice, minPrice, len(prices)
}
