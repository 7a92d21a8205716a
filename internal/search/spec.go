package search

// Spec is the user's search intent. Everything except the outcode is
// optional; a zero value means the dimension is unset and contributes no
// query fragment. An empty Outcode falls back to the builder's default.
type Spec struct {
	Outcode     string
	Radius      float64  // miles
	Types       []string // detached, semi-detached, terraced, flat, bungalow, land, park-home
	MaxPrice    int
	MinBedrooms int
	Exclusions  []string // newHome, sharedOwnership, retirement
	Inclusions  []string // garden, parking, newHome, retirement, sharedOwnership, auction
	IncludeSSTC bool     // keep sold-subject-to-contract listings in the results
	MaxDays     int      // days since listed; the site only accepts 1, 3, 7 or 14
}
