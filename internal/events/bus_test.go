package events

import (
	"testing"
	"time"
)

func TestSubscribeReceivesPublish(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(CategoriesUpdated)
	defer cancel()

	bus.Publish(CategoriesUpdated)

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected notification after publish")
	}
}

func TestPublishCoalescesBursts(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(CategoriesUpdated)
	defer cancel()

	for i := 0; i < 10; i++ {
		bus.Publish(CategoriesUpdated)
	}

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected at least one notification")
	}

	// The burst was coalesced while unread; no backlog remains.
	select {
	case <-ch:
		t.Fatal("expected burst to coalesce into a single pending signal")
	default:
	}
}

func TestPublishOtherTopicNotDelivered(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(CategoriesUpdated)
	defer cancel()

	bus.Publish("audios.updated")

	select {
	case <-ch:
		t.Fatal("did not expect notification for an unrelated topic")
	default:
	}
}

func TestCancelClosesChannel(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(CategoriesUpdated)
	cancel()

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed after cancel")
	}

	// Publishing after cancel must not panic or deliver.
	bus.Publish(CategoriesUpdated)
}

func TestMultipleSubscribers(t *testing.T) {
	bus := NewBus()
	ch1, cancel1 := bus.Subscribe(CategoriesUpdated)
	ch2, cancel2 := bus.Subscribe(CategoriesUpdated)
	defer cancel1()
	defer cancel2()

	bus.Publish(CategoriesUpdated)

	for i, ch := range []<-chan struct{}{ch1, ch2} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d did not receive notification", i+1)
		}
	}
}
