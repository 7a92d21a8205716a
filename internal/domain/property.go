package domain

// PropertyRecord is one fully extracted listing. A record only exists when
// every field was successfully pulled off the detail page; partial records
// are never built.
type PropertyRecord struct {
	Price       int    // whole pounds
	Beds        int
	Address     string
	Description string
	URL         string // detail page the record came from
}
