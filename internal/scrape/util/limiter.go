package util

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces outbound requests so one crawl cannot hammer the site. The
// whole crawl targets a single host, so a single token bucket is enough.
type Limiter struct {
	lim *rate.Limiter
}

func NewLimiter(reqPerSec float64, burst int) *Limiter {
	if reqPerSec <= 0 {
		reqPerSec = 2
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{lim: rate.NewLimiter(rate.Limit(reqPerSec), burst)}
}

// Wait blocks until the next request is allowed or ctx is done. A nil
// Limiter never blocks.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.lim.Wait(ctx)
}
