// Command warmac fetches the current trade listings for one Warframe item
// from warframe.market, filters them by recency, order side, and item
// variant, and prints a summary statistic of the platinum prices.
//
// Usage:
//
//	warmac [-s <stat>] [-p <platform>] [-t <days>] [-m | -r] [-b] [-v] <item>
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/wfm-tools/warmac/internal/average"
	"github.com/wfm-tools/warmac/internal/config"
	"github.com/wfm-tools/warmac/internal/logger"
	"github.com/wfm-tools/warmac/internal/models"
	"github.com/wfm-tools/warmac/internal/telegram"
	"github.com/wfm-tools/warmac/internal/wfmarket"
)

const version = "0.1.0"

const (
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	// A .env file can carry WARMAC_* overrides (telegram credentials in
	// particular); absence is fine.
	_ = godotenv.Load()

	flags := pflag.CommandLine
	flags.StringP("stats", "s", "median",
		fmt.Sprintf("Statistic to compute; one of [%s]", strings.Join(average.StatisticNames(), ", ")))
	flags.StringP("platform", "p", "pc",
		fmt.Sprintf("Platform to fetch orders for; one of [%s]", strings.Join(config.Platforms, ", ")))
	flags.IntP("timerange", "t", config.DefaultTimeRange,
		fmt.Sprintf("Maximum order age in days, in range [1, %d]", config.MaxTimeRange))
	flags.BoolP("maxrank", "m", false, "Price the mod/arcane at max rank instead of unranked")
	flags.BoolP("radiant", "r", false, "Price the relic at radiant refinement instead of intact")
	flags.BoolP("buyers", "b", false, "Aggregate buyer orders instead of seller orders")
	flags.CountP("verbose", "v", "Print additional information; repeat for debug logging")
	configPath := flags.String("config", "", "Path to an optional configuration file")
	showVersion := flags.BoolP("version", "V", false, "Show the program's version number and exit")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: warmac [options] <item>\n\n"+
			"Fetch the average market cost of an item in Warframe.\n\nOptions:\n%s", flags.FlagUsages())
	}
	pflag.Parse()

	if *showVersion {
		fmt.Printf("warmac %s\n", version)
		return
	}

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warmac: %v\n", err)
		os.Exit(exitUsage)
	}

	// The item is the single positional argument; it overrides any item set
	// through the config file or environment.
	if args := pflag.Args(); len(args) > 0 {
		cfg.Query.Item = config.NormalizeItemName(strings.Join(args, " "))
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "warmac: %v\n", err)
		flags.Usage()
		os.Exit(exitUsage)
	}

	level := cfg.Logging.Level
	if level == "" {
		level = logger.LevelFromVerbosity(cfg.Query.Verbose)
	}
	logger.Init(level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := wfmarket.NewClient(cfg.API.BaseURL, cfg.API.Timeout)

	result, err := runQuery(ctx, client, cfg)
	if err != nil {
		logger.Error("Query failed: %v", err)
		fmt.Fprintf(os.Stderr, "warmac: %v\n", userMessage(err))
		os.Exit(exitFailure)
	}

	if cfg.Query.Verbose > 0 {
		printVerbose(result)
	} else {
		fmt.Printf("%.1f\n", result.Value)
	}

	if cfg.Telegram.Enabled {
		notify(result, cfg)
	}
}

// runQuery executes the fetch → extract → filter → aggregate pipeline once.
// The reference instant for recency filtering is captured here, before
// iteration, so every order is judged against the same moment.
func runQuery(ctx context.Context, client *wfmarket.Client, cfg *config.Config) (*models.Result, error) {
	now := time.Now().UTC()

	logger.Info("Fetching orders for %q on %s", cfg.Query.Item, cfg.Query.Platform)
	meta, orders, requestID, err := client.FetchOrders(ctx, cfg.Query.Item, cfg.Query.Platform)
	if err != nil {
		return nil, err
	}
	logger.Debug("Request %s: %d orders, relic=%v, mod_or_arcane=%v, max_rank=%d",
		requestID, len(orders), meta.IsRelic, meta.IsModOrArcane, meta.MaxRank)

	prices, err := average.FilterPrices(meta, orders, cfg.Filters(), now)
	if err != nil {
		return nil, err
	}
	logger.Info("%d of %d orders admitted", len(prices), len(orders))

	value, err := average.Compute(prices, cfg.Statistic())
	if err != nil {
		return nil, err
	}

	maxPrice, minPrice, count := average.Summary(prices)
	result := &models.Result{
		QueryID:    requestID,
		Item:       cfg.Query.Item,
		Platform:   cfg.Query.Platform,
		Statistic:  cfg.Query.Statistic,
		TimeRange:  cfg.Query.TimeRange,
		Value:      value,
		MaxPrice:   maxPrice,
		MinPrice:   minPrice,
		OrderCount: count,
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("inconsistent result: %w", err)
	}
	return result, nil
}

// printVerbose writes the labeled result block, matching a fixed label
// column so the values line up.
func printVerbose(r *models.Result) {
	const width = 23
	statName := titleCase(r.Statistic)
	days := "days"
	if r.TimeRange == 1 {
		days = "day"
	}

	fmt.Printf("%-*s%s\n", width, "Item:", r.DisplayName())
	fmt.Printf("%-*s%s\n", width, "Statistic Found:", statName)
	fmt.Printf("%-*s%d %s\n", width, "Time Range Used:", r.TimeRange, days)
	fmt.Printf("%-*s%.1f platinum\n", width, statName+" Price:", r.Value)
	fmt.Printf("%-*s%d platinum\n", width, "Max Price:", r.MaxPrice)
	fmt.Printf("%-*s%d platinum\n", width, "Min Price:", r.MinPrice)
	fmt.Printf("%-*s%d\n", width, "Number of Orders:", r.OrderCount)
}

// notify sends the result via Telegram. Delivery failures are logged but do
// not fail the query; the statistic has already been printed.
func notify(result *models.Result, cfg *config.Config) {
	client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID,
		cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
	if err != nil {
		logger.Error("Failed to initialize Telegram client: %v", err)
		return
	}
	if err := client.SendResult(result); err != nil {
		logger.Error("Failed to send Telegram notification: %v", err)
		return
	}
	logger.Info("Sent Telegram notification")
}

// userMessage maps typed pipeline errors to the message shown on stderr.
func userMessage(err error) string {
	switch {
	case errors.Is(err, average.ErrNoListings):
		return "there are no listings matching your search parameters"
	case errors.Is(err, average.ErrZeroPrice):
		return "a listing is priced at zero platinum, so the harmonic mean is undefined"
	}

	var schemaErr *wfmarket.SchemaError
	if errors.As(err, &schemaErr) {
		return fmt.Sprintf("%v; the warframe.market API may have changed", schemaErr)
	}
	var fieldErr *average.FieldError
	if errors.As(err, &fieldErr) {
		return fmt.Sprintf("%v; the marketplace returned inconsistent data", fieldErr)
	}
	return err.Error()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
