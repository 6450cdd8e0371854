package services

import (
	"sync"

	"github.com/javajoker/storefront-backend/internal/cache"
	"github.com/javajoker/storefront-backend/internal/events"
)

type publishedEvent struct {
	Kind    events.Kind
	Payload interface{}
	// CacheWarm records whether the product cache still answered reads when the event went out.
	CacheWarm bool
}

type recordingPublisher struct {
	mu     sync.Mutex
	cache  *cache.ProductCache
	events []publishedEvent
}

func newRecordingPublisher(c *cache.ProductCache) *recordingPublisher {
	return &recordingPublisher{cache: c}
}

func (p *recordingPublisher) Publish(kind events.Kind, payload interface{}) {
	warm := false
	if p.cache != nil {
		_, warm = p.cache.Get()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Kind: kind, Payload: payload, CacheWarm: warm})
}

func (p *recordingPublisher) Events() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

func (p *recordingPublisher) Last() publishedEvent {
	all := p.Events()
	if len(all) == 0 {
		return publishedEvent{}
	}
	return all[len(all)-1]
}

func ptr[T any](v T) *T {
	return &v
}
