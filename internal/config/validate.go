package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

var validMaxDays = map[int]bool{0: true, 1: true, 3: true, 7: true, 14: true}

// NormalizeAndValidate returns a cleaned copy of cfg plus everything wrong
// with it. List values are trimmed and deduplicated but never reordered; the
// site treats list order as significant.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Search.Types = trimList(out.Search.Types)
	out.Search.Exclusions = trimList(out.Search.Exclusions)
	out.Search.Inclusions = trimList(out.Search.Inclusions)
	out.Search.Outcode = strings.TrimSpace(out.Search.Outcode)
	out.Search.DefaultOutcode = strings.TrimSpace(out.Search.DefaultOutcode)

	// ---- Validation rules ----

	if out.Site.Origin == "" {
		res.addErr("site.origin is required")
	} else if u, err := url.Parse(out.Site.Origin); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("site.origin %q is not an absolute URL", out.Site.Origin)
	} else if strings.HasSuffix(out.Site.Origin, "/") {
		res.addErr("site.origin must not end in a slash")
	}

	if out.Site.FindPath == "" {
		res.addErr("site.find_path is required")
	} else if !strings.HasSuffix(out.Site.FindPath, "?") {
		res.addWarn("site.find_path does not end in '?'; query fragments may not attach cleanly.")
	}

	if out.Site.UserAgent == "" {
		res.addErr("site.user_agent is required; the site expects a client identifier")
	}
	if out.Site.OutcodesFile == "" {
		res.addErr("site.outcodes_file is required")
	}

	if out.Search.Outcode == "" && out.Search.DefaultOutcode == "" {
		res.addErr("search.outcode and search.default_outcode are both empty; no location to search")
	}
	if !validMaxDays[out.Search.MaxDays] {
		res.addErr("search.max_days must be 1, 3, 7 or 14 (got %d)", out.Search.MaxDays)
	}
	if out.Search.MaxPrice < 0 {
		res.addErr("search.max_price must not be negative")
	}
	if out.Search.MinBedrooms < 0 {
		res.addErr("search.min_bedrooms must not be negative")
	}

	if out.Crawl.Workers < 0 {
		res.addErr("crawl.workers must not be negative")
	} else if out.Crawl.Workers > 8 {
		res.addWarn("crawl.workers is %d; the site may not appreciate that many parallel fetches.", out.Crawl.Workers)
	}
	if out.Crawl.RequestsPerSec > 5 {
		res.addWarn("crawl.requests_per_sec is %.1f; consider slowing down.", out.Crawl.RequestsPerSec)
	}

	return out, res
}
