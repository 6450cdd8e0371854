// Package events fans change notifications out to connected real-time subscribers.
//
// Delivery is at-most-once and fire-and-forget: Publish never blocks, and a subscriber
// whose buffer is full misses that event without affecting anyone else. There is no
// replay; late joiners must read current state through the API.
package events

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/metrics"
)

type Kind string

const (
	ProductAdded    Kind = "product-added"
	ProductUpdated  Kind = "product-updated"
	ProductDeleted  Kind = "product-deleted"
	OrderAdded      Kind = "order-added"
	OrderUpdated    Kind = "order-updated"
	OrderDeleted    Kind = "order-deleted"
	TrackingAdded   Kind = "tracking-added"
	TrackingUpdated Kind = "tracking-updated"
	TrackingDeleted Kind = "tracking-deleted"
)

// Kinds lists every event kind the bus carries.
var Kinds = []Kind{
	ProductAdded, ProductUpdated, ProductDeleted,
	OrderAdded, OrderUpdated, OrderDeleted,
	TrackingAdded, TrackingUpdated, TrackingDeleted,
}

type Event struct {
	Seq         uint64      `json:"seq"`
	Kind        Kind        `json:"event"`
	Payload     interface{} `json:"data"`
	PublishedAt time.Time   `json:"publishedAt"`
}

// Deletion payloads carry only the key, the record no longer exists.
type ProductDeletedPayload struct {
	ID string `json:"id"`
}

type OrderDeletedPayload struct {
	OrderID string `json:"orderId"`
}

type TrackingDeletedPayload struct {
	QRID string `json:"qrId"`
}

// Publisher is what services depend on.
type Publisher interface {
	Publish(kind Kind, payload interface{})
}

type Subscription struct {
	ID uint64
	// C is closed when the subscription is removed or the bus shuts down.
	C  <-chan Event
	ch chan Event
	// internal subscriptions belong to in-process relays and are not counted as clients.
	internal bool
}

type Bus struct {
	mu          sync.Mutex
	subscribers map[uint64]*Subscription
	clients     int
	nextID      uint64
	seq         uint64
	buffer      int
	closed      bool
	now         func() time.Time
}

func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 1
	}
	return &Bus{
		subscribers: make(map[uint64]*Subscription),
		buffer:      buffer,
		now:         time.Now,
	}
}

// Subscribe registers a real-time client.
func (b *Bus) Subscribe() *Subscription {
	return b.subscribe(false)
}

// SubscribeInternal registers an in-process consumer such as the Kafka relay.
// It receives every event but is left out of Count.
func (b *Bus) SubscribeInternal() *Subscription {
	return b.subscribe(true)
}

func (b *Bus) subscribe(internal bool) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	ch := make(chan Event, b.buffer)
	sub := &Subscription{ID: b.nextID, C: ch, ch: ch, internal: internal}
	if b.closed {
		close(ch)
		return sub
	}
	b.subscribers[sub.ID] = sub
	if !internal {
		b.clients++
		metrics.RealtimeSubscribers.Set(float64(b.clients))
	}
	return sub
}

// Unsubscribe removes sub and closes its channel. Calling it again is a no-op.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscribers[sub.ID]; !ok {
		return
	}
	delete(b.subscribers, sub.ID)
	close(sub.ch)
	if !sub.internal {
		b.clients--
		metrics.RealtimeSubscribers.Set(float64(b.clients))
	}
}

// Publish delivers the event to every current subscriber without blocking.
// Events from one goroutine reach each subscriber in call order.
func (b *Bus) Publish(kind Kind, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.seq++
	event := Event{Seq: b.seq, Kind: kind, Payload: payload, PublishedAt: b.now().UTC()}
	metrics.EventsPublished.WithLabelValues(string(kind)).Inc()

	for _, sub := range b.subscribers {
		select {
		case sub.ch <- event:
		default:
			metrics.EventsDropped.WithLabelValues(string(kind)).Inc()
			logrus.WithFields(logrus.Fields{
				"subscriber": sub.ID,
				"event":      kind,
				"seq":        event.Seq,
			}).Warn("Subscriber buffer full, dropping event")
		}
	}
}

// Count reports the number of connected real-time clients.
func (b *Bus) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clients
}

// Close disconnects every subscriber; later publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subscribers {
		close(sub.ch)
		delete(b.subscribers, id)
	}
	b.clients = 0
	metrics.RealtimeSubscribers.Set(0)
}
