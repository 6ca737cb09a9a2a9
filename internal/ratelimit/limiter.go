package ratelimit

import "context"

// RateLimiter bounds outbound message throughput per tenant scope.
type RateLimiter interface {
	Allow(ctx context.Context, scope string) (bool, error)
}
