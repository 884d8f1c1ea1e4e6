// Package limiter counts requests per key in fixed windows. The gateway uses
// it to cap how often a single acting user may call the server.
package limiter

import (
	"context"
	"time"
)

// Store decides whether one more request for key fits in the current window.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
