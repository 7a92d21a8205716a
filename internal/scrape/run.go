package scrape

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"rightmove-engine/internal/domain"
	"rightmove-engine/internal/search"
)

// Runner drives one end-to-end crawl: build the search URL, paginate the
// results, then fetch and extract every discovered listing. All run state
// lives on the call stack, so a Runner can be reused across runs without
// leaking links or records between them.
type Runner struct {
	Fetcher Fetcher
	Builder *search.Builder
	Origin  string
	Workers int // concurrent detail fetches; <=1 means sequential
}

// Report summarizes one run for logging and persistence.
type Report struct {
	SearchURL    string
	TotalPages   int
	PagesCovered int
	Discovered   int
	Extracted    int
	Skipped      []string // listing URLs dropped by fetch or extract failure
}

// Run executes the crawl. Per-listing failures are logged and skipped, never
// fatal; the returned records are everything that extracted cleanly, in
// listing-discovery order. An error is returned only for the fatal cases:
// a bad spec, a failed first results page, a missing pagination marker, or
// cancellation.
func (r *Runner) Run(ctx context.Context, spec search.Spec) ([]domain.PropertyRecord, Report, error) {
	searchURL, err := r.Builder.Build(spec)
	if err != nil {
		return nil, Report{}, err
	}
	log.Printf("[run] search url: %s", searchURL)

	pag := &Paginator{Fetcher: r.Fetcher, Origin: r.Origin}
	walk, err := pag.Paginate(ctx, searchURL)
	if err != nil {
		return nil, Report{SearchURL: searchURL}, err
	}

	urls := walk.Links.URLs()
	log.Printf("[run] pages %d/%d, %d listings discovered", walk.Covered, walk.TotalPages, len(urls))

	// One slot per discovered URL; each worker writes only its own index.
	// Compacting afterwards keeps the table in discovery order even with
	// concurrent fetches.
	slots := make([]*domain.PropertyRecord, len(urls))
	var mu sync.Mutex
	var skipped []string

	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			doc, err := r.Fetcher.Fetch(gctx, u)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("[detail] skipping: %v", err)
				mu.Lock()
				skipped = append(skipped, u)
				mu.Unlock()
				return nil
			}
			rec, err := ExtractDetail(doc, u)
			if err != nil {
				log.Printf("[detail] skipping: %v", err)
				mu.Lock()
				skipped = append(skipped, u)
				mu.Unlock()
				return nil
			}
			slots[i] = &rec
			return nil
		})
	}

	rep := Report{
		SearchURL:    searchURL,
		TotalPages:   walk.TotalPages,
		PagesCovered: walk.Covered,
		Discovered:   len(urls),
	}

	if err := g.Wait(); err != nil {
		return nil, rep, err
	}

	records := make([]domain.PropertyRecord, 0, len(urls))
	for _, s := range slots {
		if s != nil {
			records = append(records, *s)
		}
	}
	rep.Extracted = len(records)
	rep.Skipped = skipped
	return records, rep, nil
}
