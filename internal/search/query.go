package search

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"rightmove-engine/internal/location"
)

// ErrInvalidMaxDays means the days-since-added filter is outside the set the
// site accepts.
var ErrInvalidMaxDays = errors.New("maxDaysSinceAdded must be 1, 3, 7 or 14")

// listDelim is the encoded comma the site expects between list values.
const listDelim = "%2C"

var validMaxDays = map[int]bool{1: true, 3: true, 7: true, 14: true}

// Builder turns a Spec into a complete results-page URL. It never does I/O;
// location resolution reads the preloaded table only.
type Builder struct {
	resolver       *location.Resolver
	findURL        string // base search path, ends in "find.html?"
	defaultOutcode string
}

func NewBuilder(resolver *location.Resolver, findURL, defaultOutcode string) *Builder {
	return &Builder{resolver: resolver, findURL: findURL, defaultOutcode: defaultOutcode}
}

// Build assembles the search URL. An unresolvable outcode or an invalid
// MaxDays is a configuration error: the caller gets it before any network
// I/O happens. List-valued dimensions keep their caller order.
func (b *Builder) Build(spec Spec) (string, error) {
	outcode := spec.Outcode
	if outcode == "" {
		outcode = b.defaultOutcode
	}
	code, err := b.resolver.Resolve(outcode)
	if err != nil {
		return "", fmt.Errorf("search: location %q: %w", outcode, err)
	}
	if spec.MaxDays != 0 && !validMaxDays[spec.MaxDays] {
		return "", fmt.Errorf("search: maxdays %d: %w", spec.MaxDays, ErrInvalidMaxDays)
	}

	// One row per search dimension, evaluated in site order. Each row
	// contributes at most one fragment.
	terms := []struct {
		set  bool
		frag func() string
	}{
		{true, func() string { return fmt.Sprintf("locationIdentifier=OUTCODE%%5E%d", code) }},
		{spec.Radius > 0, func() string { return "radius=" + strconv.FormatFloat(spec.Radius, 'f', -1, 64) }},
		{len(spec.Types) > 0, func() string { return "propertyTypes=" + strings.Join(spec.Types, listDelim) }},
		{spec.MaxPrice > 0, func() string { return fmt.Sprintf("maxPrice=%d", spec.MaxPrice) }},
		{spec.MinBedrooms > 0, func() string { return fmt.Sprintf("minBedrooms=%d", spec.MinBedrooms) }},
		{len(spec.Exclusions) > 0, func() string { return "dontShow=" + strings.Join(spec.Exclusions, listDelim) }},
		{len(spec.Inclusions) > 0, func() string { return "mustHave=" + strings.Join(spec.Inclusions, listDelim) }},
		{spec.IncludeSSTC, func() string { return "includeSSTC=true" }},
		{spec.MaxDays != 0, func() string { return fmt.Sprintf("maxDaysSinceAdded=%d", spec.MaxDays) }},
	}

	frags := make([]string, 0, len(terms))
	for _, t := range terms {
		if t.set {
			frags = append(frags, t.frag())
		}
	}
	return b.findURL + strings.Join(frags, "&"), nil
}
