package limiter

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const retryPrimaryAfter = time.Minute

// FailoverStore serves from primary until it errors, then from fallback.
// The primary is retried once retryPrimaryAfter has passed since it failed.
type FailoverStore struct {
	primary  Store
	fallback Store
	logger   *zerolog.Logger

	mu       sync.Mutex
	down     bool
	failedAt time.Time
	now      func() time.Time
}

func NewFailoverStore(primary, fallback Store, logger *zerolog.Logger) *FailoverStore {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *FailoverStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if s.usePrimary() {
		allowed, err := s.primary.Allow(ctx, key, limit, window)
		if err == nil {
			s.markUp()
			return allowed, nil
		}
		s.markDown(err)
	}
	return s.fallback.Allow(ctx, key, limit, window)
}

func (s *FailoverStore) Down() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.down
}

func (s *FailoverStore) usePrimary() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.down || s.now().Sub(s.failedAt) > retryPrimaryAfter
}

func (s *FailoverStore) markUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		s.logger.Info().Msg("Primary rate limit store recovered")
	}
	s.down = false
}

func (s *FailoverStore) markDown(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.down {
		s.logger.Error().Err(err).Msg("Primary rate limit store failed, falling back to memory")
	}
	s.down = true
	s.failedAt = s.now()
}
