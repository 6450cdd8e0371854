package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev, ok := <-sub.C:
		require.True(t, ok, "subscription closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case ev, ok := <-sub.C:
		if ok {
			t.Fatalf("unexpected event %s", ev.Kind)
		}
	default:
	}
}

func TestPublishFansOutToAllSubscribers(t *testing.T) {
	bus := NewBus(8)
	a := bus.Subscribe()
	b := bus.Subscribe()

	bus.Publish(ProductAdded, map[string]string{"id": "p1"})

	evA := receive(t, a)
	evB := receive(t, b)
	assert.Equal(t, ProductAdded, evA.Kind)
	assert.Equal(t, evA.Seq, evB.Seq)
	assert.Equal(t, map[string]string{"id": "p1"}, evB.Payload)
}

func TestEventsArriveInPublishOrder(t *testing.T) {
	bus := NewBus(16)
	sub := bus.Subscribe()

	for _, kind := range Kinds {
		bus.Publish(kind, nil)
	}

	var prev uint64
	for _, kind := range Kinds {
		ev := receive(t, sub)
		assert.Equal(t, kind, ev.Kind)
		assert.Greater(t, ev.Seq, prev)
		prev = ev.Seq
	}
}

func TestSlowSubscriberDoesNotBlockOthers(t *testing.T) {
	bus := NewBus(1)
	slow := bus.Subscribe()
	fast := bus.Subscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		bus.Publish(OrderAdded, "first")
		<-fast.C
		bus.Publish(OrderUpdated, "second")
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}

	// The slow subscriber kept the first event and missed the second.
	assert.Equal(t, OrderAdded, receive(t, slow).Kind)
	assertNoEvent(t, slow)
	assert.Equal(t, OrderUpdated, receive(t, fast).Kind)
}

func TestNoReplayForLateSubscribers(t *testing.T) {
	bus := NewBus(8)
	bus.Publish(TrackingAdded, "before")

	late := bus.Subscribe()
	assertNoEvent(t, late)

	bus.Publish(TrackingUpdated, "after")
	assert.Equal(t, TrackingUpdated, receive(t, late).Kind)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	bus := NewBus(8)
	sub := bus.Subscribe()
	require.Equal(t, 1, bus.Count())

	bus.Unsubscribe(sub)
	bus.Unsubscribe(sub)
	bus.Unsubscribe(nil)

	assert.Equal(t, 0, bus.Count())
	_, ok := <-sub.C
	assert.False(t, ok)

	// Publishing after unsubscribe must not panic on the closed channel.
	bus.Publish(ProductDeleted, ProductDeletedPayload{ID: "p1"})
}

func TestInternalSubscriptionReceivesButIsNotCounted(t *testing.T) {
	bus := NewBus(8)
	relay := bus.SubscribeInternal()
	client := bus.Subscribe()
	assert.Equal(t, 1, bus.Count())

	bus.Publish(ProductAdded, nil)
	assert.Equal(t, ProductAdded, receive(t, relay).Kind)
	assert.Equal(t, ProductAdded, receive(t, client).Kind)

	bus.Unsubscribe(relay)
	bus.Unsubscribe(relay)
	assert.Equal(t, 1, bus.Count())
	bus.Unsubscribe(client)
	assert.Equal(t, 0, bus.Count())
}

func TestCloseDisconnectsEveryone(t *testing.T) {
	bus := NewBus(8)
	a := bus.Subscribe()
	bus.Close()
	bus.Close()

	_, ok := <-a.C
	assert.False(t, ok)
	assert.Equal(t, 0, bus.Count())

	afterClose := bus.Subscribe()
	_, ok = <-afterClose.C
	assert.False(t, ok)
	bus.Publish(ProductAdded, nil)
}

func TestConcurrentSubscribeAndPublish(t *testing.T) {
	bus := NewBus(4)
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := bus.Subscribe()
			bus.Unsubscribe(sub)
		}()
		go func() {
			defer wg.Done()
			bus.Publish(ProductUpdated, nil)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, bus.Count())
}
