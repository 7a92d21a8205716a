package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	detailSuffix = "html"
	// The site emits /property-0.html stub links for some listing states.
	// Keep this exact exclusion; its origin in the markup is unexplained.
	placeholderPath = "/property-0.html"
)

// LinkSet is an insertion-ordered set of absolute detail-page URLs. Identity
// is the exact string value.
type LinkSet struct {
	order []string
	seen  map[string]bool
}

func NewLinkSet() *LinkSet {
	return &LinkSet{seen: make(map[string]bool)}
}

// Add inserts a URL if it is not already present and reports whether it did.
func (s *LinkSet) Add(u string) bool {
	if s.seen[u] {
		return false
	}
	s.seen[u] = true
	s.order = append(s.order, u)
	return true
}

func (s *LinkSet) Len() int { return len(s.order) }

// URLs returns the set in insertion order.
func (s *LinkSet) URLs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// CollectListingLinks pulls detail-page links off a results page into the
// set. This is the only place discovered URLs are deduplicated. Returns how
// many links were new.
func CollectListingLinks(doc *goquery.Document, origin string, set *LinkSet) int {
	added := 0
	doc.Find("div.propertyCard-details a.propertyCard-link").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		abs := href
		if strings.HasPrefix(href, "/") {
			abs = origin + href
		}
		if !strings.HasSuffix(abs, detailSuffix) || strings.HasSuffix(abs, placeholderPath) {
			return
		}
		if set.Add(abs) {
			added++
		}
	})
	return added
}
