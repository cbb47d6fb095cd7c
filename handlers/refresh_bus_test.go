package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefreshBusFansOutToOtherViews(t *testing.T) {
	bus := NewRefreshBus()
	pending := bus.Subscribe("pending")
	submitted := bus.Subscribe("submitted")

	bus.Publish(RefreshSignal{Source: "pending", Action: "submit"})

	select {
	case sig := <-submitted:
		assert.Equal(t, "submit", sig.Action)
		assert.Equal(t, "pending", sig.Source)
	default:
		t.Fatal("submitted view should have received the signal")
	}

	// originating view never hears its own signal
	select {
	case sig := <-pending:
		t.Fatalf("pending view received its own signal: %+v", sig)
	default:
	}
}

func TestRefreshBusResubscribeReplacesChannel(t *testing.T) {
	bus := NewRefreshBus()
	old := bus.Subscribe("pending")
	fresh := bus.Subscribe("pending")

	// old channel is closed on replacement
	_, open := <-old
	assert.False(t, open)

	bus.Publish(RefreshSignal{Source: "submitted", Action: "activate"})
	select {
	case sig := <-fresh:
		assert.Equal(t, "activate", sig.Action)
	default:
		t.Fatal("replacement channel should receive signals")
	}
}

func TestRefreshBusUnsubscribe(t *testing.T) {
	bus := NewRefreshBus()
	ch := bus.Subscribe("pending")
	bus.Unsubscribe("pending")

	_, open := <-ch
	assert.False(t, open)

	// publishing after unsubscribe must not panic
	bus.Publish(RefreshSignal{Source: "submitted", Action: "reject"})
}

func TestRefreshBusSlowSubscriberIsSkipped(t *testing.T) {
	bus := NewRefreshBus()
	bus.Subscribe("slow")

	// fill the buffer and one more; the overflow is dropped, not blocked on
	for i := 0; i < 16; i++ {
		bus.Publish(RefreshSignal{Source: "other", Action: "submit"})
	}
}
