package questions

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"imageguess-engine/internal/domain"
)

// CachedSource caches the loaded collection with a TTL so repeated sessions
// do not re-read the backing source on every start.
type CachedSource struct {
	loader Loader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	questions []domain.Question
	expiresAt time.Time
}

func NewCachedSource(loader Loader, ttl time.Duration) *CachedSource {
	return &CachedSource{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *CachedSource) Load(ctx context.Context) ([]domain.Question, error) {
	now := s.clock()

	s.mu.RLock()
	if s.questions != nil && s.expiresAt.After(now) {
		cached := s.questions
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	result, err, _ := s.sf.Do("questions", func() (interface{}, error) {
		now := s.clock()
		s.mu.RLock()
		if s.questions != nil && s.expiresAt.After(now) {
			cached := s.questions
			s.mu.RUnlock()
			return cached, nil
		}
		s.mu.RUnlock()

		questions, err := s.loader.Load(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.questions = questions
		s.expiresAt = now.Add(s.ttlWithJitter())
		s.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (s *CachedSource) ttlWithJitter() time.Duration {
	if s.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(s.ttl) / 10
	return s.ttl + time.Duration(s.rnd.Int63n(jitterMax+1))
}
