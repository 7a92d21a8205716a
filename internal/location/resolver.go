package location

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNotFound means the outcode has no entry in the linking table.
var ErrNotFound = errors.New("outcode not found")

type entry struct {
	Outcode string `json:"outcode"`
	Code    int    `json:"code"`
}

// Resolver maps postal outcodes to the site's internal location codes using
// a static linking table loaded once at startup.
type Resolver struct {
	entries []entry
}

func LoadTable(path string) (*Resolver, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("location: read outcode table: %w", err)
	}
	var entries []entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("location: parse outcode table %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("location: outcode table %s is empty", path)
	}
	return &Resolver{entries: entries}, nil
}

// Resolve returns the internal location code for an outcode. Outcodes are
// assumed unique in the table; if a duplicate slips in, the earliest entry
// wins.
func (r *Resolver) Resolve(outcode string) (int, error) {
	for _, e := range r.entries {
		if e.Outcode == outcode {
			return e.Code, nil
		}
	}
	return 0, fmt.Errorf("location: %q: %w", outcode, ErrNotFound)
}

func (r *Resolver) Len() int { return len(r.entries) }
