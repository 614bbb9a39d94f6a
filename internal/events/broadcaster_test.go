package events

import (
	"testing"
	"time"
)

func TestBroadcaster_SubscribePublish(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	if b.Count() != 1 {
		t.Fatalf("Count = %d, want 1", b.Count())
	}

	b.Publish(Event{Type: EventFolderUpdated, NodeID: "f1"})

	select {
	case ev := <-ch:
		if ev.Type != EventFolderUpdated || ev.NodeID != "f1" {
			t.Errorf("got %+v", ev)
		}
		if ev.Timestamp == 0 {
			t.Error("Timestamp was not filled in")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBroadcaster_MultipleSubscribers(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	defer b.Unsubscribe(ch1)
	defer b.Unsubscribe(ch2)

	b.Publish(Event{Type: EventFilterChanged})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Type != EventFilterChanged {
				t.Errorf("got type %q", ev.Type)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestBroadcaster_Unsubscribe(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	b.Unsubscribe(ch)

	if b.Count() != 0 {
		t.Fatalf("Count = %d, want 0", b.Count())
	}
	if _, open := <-ch; open {
		t.Error("channel still open after Unsubscribe")
	}
	// must not panic with no subscribers
	b.Publish(Event{Type: EventTreeReloaded})
}

func TestBroadcaster_SlowConsumerDoesNotBlock(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			b.Publish(Event{Type: EventVisitsChanged})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber channel")
	}
}
