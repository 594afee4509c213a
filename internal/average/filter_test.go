package average

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/wfm-tools/warmac/internal/models"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func sellOrder(platinum int, age time.Duration) models.Order {
	return models.Order{
		OrderType:  models.OrderTypeSell,
		Platinum:   platinum,
		LastUpdate: testNow.Add(-age).Format(time.RFC3339),
	}
}

func withRank(o models.Order, rank int) models.Order {
	o.ModRank = &rank
	return o
}

func withSubtype(o models.Order, subtype string) models.Order {
	o.Subtype = &subtype
	return o
}

func plainItem() *models.ItemMetadata {
	return &models.ItemMetadata{MaxRank: models.RankNotApplicable}
}

func modItem(maxRank int) *models.ItemMetadata {
	return &models.ItemMetadata{IsModOrArcane: true, MaxRank: maxRank}
}

func relicItem() *models.ItemMetadata {
	return &models.ItemMetadata{IsRelic: true, MaxRank: models.RankNotApplicable}
}

func TestFilterPricesOrderSide(t *testing.T) {
	orders := []models.Order{
		sellOrder(15, time.Hour),
		{OrderType: models.OrderTypeBuy, Platinum: 999, LastUpdate: testNow.Add(-time.Hour).Format(time.RFC3339)},
		sellOrder(20, time.Hour),
	}

	prices, err := FilterPrices(plainItem(), orders, Filters{TimeRange: 30}, testNow)
	if err != nil {
		t.Fatalf("FilterPrices failed: %v", err)
	}
	if !reflect.DeepEqual(prices, []int{15, 20}) {
		t.Errorf("sell side: got %v, want [15 20]", prices)
	}

	prices, err = FilterPrices(plainItem(), orders, Filters{UseBuyers: true, TimeRange: 30}, testNow)
	if err != nil {
		t.Fatalf("FilterPrices failed: %v", err)
	}
	if !reflect.DeepEqual(prices, []int{999}) {
		t.Errorf("buy side: got %v, want [999]", prices)
	}
}

func TestFilterPricesRecencyBoundary(t *testing.T) {
	const timeRange = 30
	orders := []models.Order{
		sellOrder(10, timeRange*24*time.Hour),           // exactly at the bound
		sellOrder(20, timeRange*24*time.Hour+time.Hour), // still 30 whole days after truncation
		sellOrder(30, (timeRange+1)*24*time.Hour),       // one day too old
	}

	prices, err := FilterPrices(plainItem(), orders, Filters{TimeRange: timeRange}, testNow)
	if err != nil {
		t.Fatalf("FilterPrices failed: %v", err)
	}
	if !reflect.DeepEqual(prices, []int{10, 20}) {
		t.Errorf("recency boundary: got %v, want [10 20]", prices)
	}
}

func TestFilterPricesModRank(t *testing.T) {
	meta := modItem(5)
	orders := []models.Order{
		withRank(sellOrder(15, time.Hour), 0),
		withRank(sellOrder(25, time.Hour), 5),
		withRank(sellOrder(40, time.Hour), 3),
	}

	unranked, err := FilterPrices(meta, orders, Filters{TimeRange: 30}, testNow)
	if err != nil {
		t.Fatalf("FilterPrices failed: %v", err)
	}
	if !reflect.DeepEqual(unranked, []int{15}) {
		t.Errorf("unranked mode: got %v, want [15]", unranked)
	}

	maxed, err := FilterPrices(meta, orders, Filters{MaxRank: true, TimeRange: 30}, testNow)
	if err != nil {
		t.Fatalf("FilterPrices failed: %v", err)
	}
	if !reflect.DeepEqual(maxed, []int{25}) {
		t.Errorf("max rank mode: got %v, want [25]", maxed)
	}
}

func TestFilterPricesRelicRefinement(t *testing.T) {
	meta := relicItem()
	orders := []models.Order{
		withSubtype(sellOrder(5, time.Hour), models.SubtypeIntact),
		withSubtype(sellOrder(30, time.Hour), models.SubtypeRadiant),
	}

	intact, err := FilterPrices(meta, orders, Filters{TimeRange: 30}, testNow)
	if err != nil {
		t.Fatalf("FilterPrices failed: %v", err)
	}
	if !reflect.DeepEqual(intact, []int{5}) {
		t.Errorf("intact mode: got %v, want [5]", intact)
	}

	radiant, err := FilterPrices(meta, orders, Filters{Radiant: true, TimeRange: 30}, testNow)
	if err != nil {
		t.Fatalf("FilterPrices failed: %v", err)
	}
	if !reflect.DeepEqual(radiant, []int{30}) {
		t.Errorf("radiant mode: got %v, want [30]", radiant)
	}
}

func TestFilterPricesMissingRequiredFields(t *testing.T) {
	var fieldErr *FieldError

	// A mod listing without mod_rank is a data-integrity failure.
	_, err := FilterPrices(modItem(5), []models.Order{sellOrder(10, time.Hour)}, Filters{TimeRange: 30}, testNow)
	if !errors.As(err, &fieldErr) || fieldErr.Field != "mod_rank" {
		t.Errorf("expected FieldError for mod_rank, got %v", err)
	}

	// Same for a relic listing without subtype.
	_, err = FilterPrices(relicItem(), []models.Order{sellOrder(10, time.Hour)}, Filters{TimeRange: 30}, testNow)
	if !errors.As(err, &fieldErr) || fieldErr.Field != "subtype" {
		t.Errorf("expected FieldError for subtype, got %v", err)
	}
}

func TestFilterPricesShortCircuitSkipsRejectedOrders(t *testing.T) {
	// A buy order missing mod_rank never reaches the rank predicate in a
	// sell-side query, so no error surfaces.
	orders := []models.Order{
		{OrderType: models.OrderTypeBuy, Platinum: 999, LastUpdate: testNow.Add(-time.Hour).Format(time.RFC3339)},
		withRank(sellOrder(12, time.Hour), 0),
	}

	prices, err := FilterPrices(modItem(5), orders, Filters{TimeRange: 30}, testNow)
	if err != nil {
		t.Fatalf("FilterPrices failed: %v", err)
	}
	if !reflect.DeepEqual(prices, []int{12}) {
		t.Errorf("got %v, want [12]", prices)
	}
}

func TestFilterPricesBadTimestamp(t *testing.T) {
	orders := []models.Order{
		{OrderType: models.OrderTypeSell, Platinum: 10, LastUpdate: "yesterday"},
	}
	if _, err := FilterPrices(plainItem(), orders, Filters{TimeRange: 30}, testNow); err == nil {
		t.Fatal("expected parse error for malformed last_update")
	}
}

func TestFilterPricesIdempotent(t *testing.T) {
	meta := modItem(5)
	orders := []models.Order{
		withRank(sellOrder(15, time.Hour), 0),
		withRank(sellOrder(25, time.Hour), 5),
		withRank(sellOrder(18, 3*24*time.Hour), 0),
	}
	f := Filters{TimeRange: 30}

	first, err := FilterPrices(meta, orders, f, testNow)
	if err != nil {
		t.Fatalf("FilterPrices failed: %v", err)
	}
	second, err := FilterPrices(meta, orders, f, testNow)
	if err != nil {
		t.Fatalf("FilterPrices failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same inputs produced different prices: %v vs %v", first, second)
	}
}

func TestFilterPricesEmptyResult(t *testing.T) {
	// No order matches the buy side; the filter returns an empty list and
	// only Compute turns that into ErrNoListings.
	orders := []models.Order{sellOrder(15, time.Hour)}

	prices, err := FilterPrices(plainItem(), orders, Filters{UseBuyers: true, TimeRange: 30}, testNow)
	if err != nil {
		t.Fatalf("FilterPrices failed: %v", err)
	}
	if len(prices) != 0 {
		t.Fatalf("expected empty price list, got %v", prices)
	}
	if _, err := Compute(prices, Median); !errors.Is(err, ErrNoListings) {
		t.Errorf("Compute on empty list = %v, want ErrNoListings", err)
	}
}

func TestFilterAndComputeEndToEnd(t *testing.T) {
	// Unranked sell-side query on a rank-5 mod: the rank-5 listing falls to
	// the rank predicate, the buy listing to the side predicate.
	meta := modItem(5)
	orders := []models.Order{
		withRank(sellOrder(15, 24*time.Hour), 0),
		withRank(sellOrder(25, 24*time.Hour), 5),
		withRank(models.Order{
			OrderType:  models.OrderTypeBuy,
			Platinum:   999,
			LastUpdate: testNow.Add(-24 * time.Hour).Format(time.RFC3339),
		}, 0),
	}

	prices, err := FilterPrices(meta, orders, Filters{TimeRange: 60}, testNow)
	if err != nil {
		t.Fatalf("FilterPrices failed: %v", err)
	}
	if !reflect.DeepEqual(prices, []int{15}) {
		t.Fatalf("filtered prices = %v, want [15]", prices)
	}

	value, err := Compute(prices, Mean)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if value != 15.0 {
		t.Errorf("mean = %v, want 15.0", value)
	}
}

func TestSummary(t *testing.T) {
	maxPrice, minPrice, count := Summary([]int{15, 40, 8, 22})
	if maxPrice != 40 || minPrice != 8 || count != 4 {
		t.Errorf("Summary = (%d, %d, %d), want (40, 8, 4)", maxPrice, minPrice, count)
	}

	maxPrice, minPrice, count = Summary(nil)
	if maxPrice != 0 || minPrice != 0 || count != 0 {
		t.Errorf("Summary(nil) = (%d, %d, %d), want zeros", maxPrice, minPrice, count)
	}
}
