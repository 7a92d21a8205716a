package scrape

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"rightmove-engine/internal/domain"
	"rightmove-engine/internal/scrape/util"
)

// ExtractError reports which field rule failed on which listing page.
type ExtractError struct {
	URL   string
	Field string
	Err   error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract %s from %s: %v", e.Field, e.URL, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// ErrPriceOutOfRange means the displayed price exceeded the site's
// three-digit-group format. The parser does not silently truncate.
var ErrPriceOutOfRange = errors.New("price has more than three digit groups")

var priceRe = regexp.MustCompile(`£([0-9][0-9,]*)`)

// fieldRule extracts one field from a detail page. Each rule owns the one
// piece of site markup it reads, so a layout change is a one-rule edit.
type fieldRule struct {
	name    string
	extract func(doc *goquery.Document, rec *domain.PropertyRecord) error
}

var detailRules = []fieldRule{
	{"price", extractPrice},
	{"beds", extractBeds},
	{"address", extractAddress},
	{"description", extractDescription},
}

// ExtractDetail parses one detail page. Extraction is all-or-nothing: every
// rule must succeed or the whole listing fails with an ExtractError carrying
// its URL, and nothing is recorded.
func ExtractDetail(doc *goquery.Document, url string) (domain.PropertyRecord, error) {
	rec := domain.PropertyRecord{URL: url}
	for _, r := range detailRules {
		if err := r.extract(doc, &rec); err != nil {
			return domain.PropertyRecord{}, &ExtractError{URL: url, Field: r.name, Err: err}
		}
	}
	return rec, nil
}

func extractPrice(doc *goquery.Document, rec *domain.PropertyRecord) error {
	sel := doc.Find("#propertyHeaderPrice strong").First()
	if sel.Length() == 0 {
		return errors.New("price element not found")
	}
	text := util.CleanText(sel.Text())
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return fmt.Errorf("no price pattern in %q", text)
	}
	// The capture is the whole digit run, separators included; never a
	// prefix of it. The site formats at most three groups of three.
	raw := strings.Trim(m[1], ",")
	groups := strings.Split(raw, ",")
	digits := strings.Join(groups, "")
	if len(groups) > 3 || len(digits) > 9 {
		return fmt.Errorf("%q: %w", raw, ErrPriceOutOfRange)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return fmt.Errorf("parse price %q: %w", raw, err)
	}
	rec.Price = n
	return nil
}

func extractBeds(doc *goquery.Document, rec *domain.PropertyRecord) error {
	sel := doc.Find(`h1.fs-22[itemprop="name"]`).First()
	if sel.Length() == 0 {
		return errors.New("title element not found")
	}
	fields := strings.Fields(sel.Text())
	if len(fields) == 0 {
		return errors.New("title is empty")
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return fmt.Errorf("leading title token %q is not a bed count", fields[0])
	}
	rec.Beds = n
	return nil
}

func extractAddress(doc *goquery.Document, rec *domain.PropertyRecord) error {
	content, ok := doc.Find(`meta[itemprop="streetAddress"]`).First().Attr("content")
	if !ok {
		return errors.New("street address meta tag not found")
	}
	rec.Address = content
	return nil
}

func extractDescription(doc *goquery.Document, rec *domain.PropertyRecord) error {
	sel := doc.Find(`p[itemprop="description"]`).First()
	if sel.Length() == 0 {
		return errors.New("description element not found")
	}
	rec.Description = util.TrimEdges(sel.Text())
	return nil
}
