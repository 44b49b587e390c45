package coursesync

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultRequestsPerMinute is used when a non-positive rate is configured.
const DefaultRequestsPerMinute = 60

// NewRequestLimiter spaces calls evenly at requestsPerMinute with no burst.
// A translation run issues requests one at a time, so fixed spacing is what
// the LLM quota needs.
func NewRequestLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = DefaultRequestsPerMinute
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
}

// PacedProvider is an AIProvider whose calls wait for a request limiter.
type PacedProvider struct {
	provider AIProvider
	limiter  *rate.Limiter
}

// NewPacedProvider wraps provider so it is called at most
// requestsPerMinute times per minute.
func NewPacedProvider(provider AIProvider, requestsPerMinute int) *PacedProvider {
	return &PacedProvider{provider: provider, limiter: NewRequestLimiter(requestsPerMinute)}
}

// Translate waits for a request slot and then calls the wrapped provider.
// A cancelled or expiring ctx returns a non-retryable ProviderError without
// calling the backend.
func (p *PacedProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", &ProviderError{Message: "waiting for request slot", Cause: err}
	}
	return p.provider.Translate(ctx, req)
}
