package scrape

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

// pageSize is the site's fixed results-per-page; page offsets are exact
// multiples of it.
const pageSize = 24

// ErrNoPaginationMarker means the first results page did not declare a total
// page count. Without it pagination would be unbounded, so this is fatal.
var ErrNoPaginationMarker = errors.New("pagination total marker not found")

var totalPagesRe = regexp.MustCompile(`"pagination":\{"total":([0-9]+)`)

// Paginator walks the results pages of one search, feeding every page
// through the link collector.
type Paginator struct {
	Fetcher Fetcher
	Origin  string
}

// PageWalk is the outcome of one pagination pass. Covered can be short of
// TotalPages when a later page failed to fetch; the links gathered up to
// that point are kept.
type PageWalk struct {
	Links      *LinkSet
	TotalPages int
	Covered    int
}

// Paginate walks every results page for searchURL. The first page must load
// and must carry the pagination marker; either failing fails the run. Any
// later page failure truncates the walk, keeping what was collected. No
// retries anywhere.
func (p *Paginator) Paginate(ctx context.Context, searchURL string) (PageWalk, error) {
	doc, err := p.Fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return PageWalk{}, fmt.Errorf("first results page: %w", err)
	}
	total, err := totalPages(doc)
	if err != nil {
		return PageWalk{}, err
	}

	set := NewLinkSet()
	CollectListingLinks(doc, p.Origin, set)

	covered := 1
	for page := 2; page <= total; page++ {
		doc, err := p.Fetcher.Fetch(ctx, pageURL(searchURL, page))
		if err != nil {
			log.Printf("[paginate] page %d/%d failed, stopping early: %v", page, total, err)
			break
		}
		CollectListingLinks(doc, p.Origin, set)
		covered++
	}

	return PageWalk{Links: set, TotalPages: total, Covered: covered}, nil
}

// pageURL appends the index offset for a 1-based page number.
func pageURL(searchURL string, page int) string {
	return fmt.Sprintf("%s&index=%d", searchURL, (page-1)*pageSize)
}

// totalPages digs the declared page total out of the script payload the site
// embeds on the first results page.
func totalPages(doc *goquery.Document) (int, error) {
	total := 0
	found := false
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		m := totalPagesRe.FindStringSubmatch(s.Text())
		if m == nil {
			return true
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return true
		}
		total = n
		found = true
		return false
	})
	if !found {
		return 0, ErrNoPaginationMarker
	}
	return total, nil
}
