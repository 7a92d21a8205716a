package scrape

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const origin = "http://www.rightmove.co.uk"

// fakeFetcher serves canned HTML by URL and records every request.
type fakeFetcher struct {
	pages map[string]string
	fail  map[string]int // URL -> HTTP status to fail with

	mu    sync.Mutex
	calls []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	if code, ok := f.fail[url]; ok {
		return nil, &FetchError{URL: url, StatusCode: code}
	}
	html, ok := f.pages[url]
	if !ok {
		return nil, &FetchError{URL: url, StatusCode: 404}
	}
	return parseHTML(nil, html)
}

func parseHTML(t *testing.T, html string) (*goquery.Document, error) {
	if t != nil {
		t.Helper()
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if t != nil && err != nil {
		t.Fatal(err)
	}
	return doc, err
}

func mustParse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, _ := parseHTML(t, html)
	return doc
}

// resultsPage builds a results page declaring a page total and carrying one
// listing card per href.
func resultsPage(total int, hrefs ...string) string {
	var b strings.Builder
	b.WriteString(`<html><head><script>window.jsonModel = {"resultCount":"`)
	b.WriteString(strconv.Itoa(len(hrefs)))
	b.WriteString(`","pagination":{"total":`)
	b.WriteString(strconv.Itoa(total))
	b.WriteString(`,"page":1}}</script></head><body>`)
	for _, h := range hrefs {
		b.WriteString(`<div class="propertyCard-details"><a class="propertyCard-link" href="` + h + `"></a></div>`)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

// detailPage builds a detail page; empty field values drop that element
// entirely so missing-field behavior can be exercised.
func detailPage(price, title, address, description string) string {
	var b strings.Builder
	b.WriteString(`<html><head>`)
	if address != "" {
		b.WriteString(`<meta itemprop="streetAddress" content="` + address + `">`)
	}
	b.WriteString(`</head><body>`)
	if price != "" {
		b.WriteString(`<div id="propertyHeaderPrice"><strong>` + price + `</strong></div>`)
	}
	if title != "" {
		b.WriteString(`<h1 class="fs-22" itemprop="name">` + title + `</h1>`)
	}
	if description != "" {
		b.WriteString(`<p itemprop="description">` + description + `</p>`)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}
