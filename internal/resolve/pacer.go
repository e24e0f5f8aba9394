package resolve

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum randomized delay between consecutive requests to
// the same source. Each source gets its own limiter so falling back to a
// second source is never penalized by the first source's cooldown.
type Pacer struct {
	limiters    map[string]*rate.Limiter
	rng         *rand.Rand
	minInterval time.Duration
	maxInterval time.Duration
	mu          sync.Mutex
}

// NewPacer creates a pacer spacing requests per source by a random interval
// within [minInterval, maxInterval].
func NewPacer(minInterval, maxInterval time.Duration) *Pacer {
	if minInterval <= 0 {
		minInterval = time.Second
	}
	if maxInterval < minInterval {
		maxInterval = minInterval + 500*time.Millisecond
	}

	return &Pacer{
		limiters:    make(map[string]*rate.Limiter),
		minInterval: minInterval,
		maxInterval: maxInterval,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Wait blocks until the source's minimum interval has elapsed since its last
// permit, plus a random jitter up to the configured maximum. It returns
// early with the context's error if the context is canceled, so a stop
// request interrupts a pending pacing wait promptly.
func (p *Pacer) Wait(ctx context.Context, source string) error {
	if err := p.limiterFor(source).Wait(ctx); err != nil {
		return fmt.Errorf("pacing wait for %s: %w", source, err)
	}

	jitter := p.jitter()
	if jitter <= 0 {
		return nil
	}

	timer := time.NewTimer(jitter)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Pacer) limiterFor(source string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	limiter, ok := p.limiters[source]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(p.minInterval), 1)
		p.limiters[source] = limiter
	}
	return limiter
}

func (p *Pacer) jitter() time.Duration {
	span := p.maxInterval - p.minInterval
	if span <= 0 {
		return 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return time.Duration(p.rng.Int63n(int64(span)))
}
