package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"

	"rightmove-engine/internal/config"
	"rightmove-engine/internal/domain"
	"rightmove-engine/internal/export"
	"rightmove-engine/internal/location"
	"rightmove-engine/internal/scrape"
	"rightmove-engine/internal/scrape/util"
	"rightmove-engine/internal/search"
	"rightmove-engine/internal/store"
)

func main() {
	// .env is optional; it can override RIGHTMOVE_DATA_DIR locally.
	_ = godotenv.Load()

	var (
		cfgPath  = flag.String("config", "", "config file (defaults to <data_dir>/config.yml, seeded from config/config.yml)")
		outcode  = flag.String("outcode", "", "outcode to search (overrides config)")
		radius   = flag.Float64("radius", -1, "search radius in miles (overrides config)")
		maxPrice = flag.Int("max-price", -1, "maximum price (overrides config)")
		minBeds  = flag.Int("min-beds", -1, "minimum bedrooms (overrides config)")
		maxDays  = flag.Int("max-days", -1, "days since added: 1, 3, 7 or 14 (overrides config)")
		workers  = flag.Int("workers", 0, "concurrent detail fetches (overrides config)")
		csvPath  = flag.String("csv", "", "write results to this CSV file (overrides config)")
	)
	flag.Parse()

	dataDir := os.Getenv("RIGHTMOVE_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	path := *cfgPath
	if path == "" {
		var err error
		path, err = config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			log.Fatalf("config bootstrap failed: %v", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", path, err)
	}
	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !res.OK() {
		for _, e := range res.Errors {
			log.Printf("[config] error: %s", e)
		}
		os.Exit(1)
	}

	if *workers > 0 {
		cfg.Crawl.Workers = *workers
	}
	if *csvPath != "" {
		cfg.Output.CSVPath = *csvPath
	}

	resolver, err := location.LoadTable(cfg.Site.OutcodesFile)
	if err != nil {
		log.Fatal(err)
	}

	// One crawl per data dir at a time; the sqlite store has a single writer.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("run lock: %v", err)
	}
	if !locked {
		log.Fatalf("another crawl is already running in %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	db, err := store.Open(filepath.Join(dataDir, "rightmove.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	spec := specFromConfig(cfg)
	if *outcode != "" {
		spec.Outcode = *outcode
	}
	if *radius >= 0 {
		spec.Radius = *radius
	}
	if *maxPrice >= 0 {
		spec.MaxPrice = *maxPrice
	}
	if *minBeds >= 0 {
		spec.MinBedrooms = *minBeds
	}
	if *maxDays >= 0 {
		spec.MaxDays = *maxDays
	}

	limiter := util.NewLimiter(cfg.Crawl.RequestsPerSec, cfg.Crawl.Burst)
	fetcher := scrape.NewHTTPFetcher(cfg.Site.UserAgent, time.Duration(cfg.Crawl.TimeoutSeconds)*time.Second, limiter)
	runner := &scrape.Runner{
		Fetcher: fetcher,
		Builder: search.NewBuilder(resolver, cfg.FindURL(), cfg.Search.DefaultOutcode),
		Origin:  cfg.Site.Origin,
		Workers: cfg.Crawl.Workers,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now().UTC()
	records, report, err := runner.Run(ctx, spec)
	if err != nil {
		log.Fatalf("crawl failed: %v", err)
	}

	runID, err := store.SaveRun(ctx, db.Pool, store.Run{
		SearchURL:    report.SearchURL,
		StartedAt:    started,
		TotalPages:   report.TotalPages,
		PagesCovered: report.PagesCovered,
		Discovered:   report.Discovered,
		Extracted:    report.Extracted,
	}, records)
	if err != nil {
		log.Printf("[store] save failed: %v", err)
	} else {
		log.Printf("[store] run %d saved (%d records)", runID, len(records))
	}

	printTable(os.Stdout, records)

	if cfg.Output.CSVPath != "" {
		if err := export.NewCSVWriter(cfg.Output.CSVPath).Write(records); err != nil {
			log.Printf("[export] %v", err)
		} else {
			log.Printf("[export] wrote %d records to %s", len(records), cfg.Output.CSVPath)
		}
	}

	log.Printf("[run] done: pages %d/%d, discovered %d, extracted %d, skipped %d",
		report.PagesCovered, report.TotalPages, report.Discovered, report.Extracted, len(report.Skipped))
}

func specFromConfig(cfg config.Config) search.Spec {
	return search.Spec{
		Outcode:     cfg.Search.Outcode,
		Radius:      cfg.Search.Radius,
		Types:       cfg.Search.Types,
		MaxPrice:    cfg.Search.MaxPrice,
		MinBedrooms: cfg.Search.MinBedrooms,
		Exclusions:  cfg.Search.Exclusions,
		Inclusions:  cfg.Search.Inclusions,
		IncludeSSTC: cfg.Search.IncludeSSTC,
		MaxDays:     cfg.Search.MaxDays,
	}
}

func printTable(out io.Writer, records []domain.PropertyRecord) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Price\tBeds\tLocation\tDescription")
	for _, r := range records {
		desc := r.Description
		// truncate on rune boundaries so multi-byte text stays intact
		if runes := []rune(desc); len(runes) > 60 {
			desc = string(runes[:57]) + "..."
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", r.Price, r.Beds, r.Address, desc)
	}
	_ = w.Flush()
}
