package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSubscribe(t *testing.T) {
	bus := New()
	id, ch := bus.Subscribe(4)
	defer bus.Unsubscribe(id)

	bus.PublishNew(TypeProjectSaved, "my_section")

	select {
	case ev := <-ch:
		assert.Equal(t, TypeProjectSaved, ev.Type)
		assert.Equal(t, "my_section", ev.Resource)
		assert.NotEmpty(t, ev.ID)
		assert.False(t, ev.CreatedAt.IsZero())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := New()
	id, ch := bus.Subscribe(1)
	bus.Unsubscribe(id)

	_, open := <-ch
	assert.False(t, open)

	// Publishing after unsubscribe must not panic.
	bus.PublishNew(TypeProjectDeleted, "gone")
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	bus := New()
	id, ch := bus.Subscribe(1)
	defer bus.Unsubscribe(id)

	bus.PublishNew(TypeProjectSaved, "a")
	bus.PublishNew(TypeProjectSaved, "b") // dropped, buffer is full

	ev := <-ch
	require.Equal(t, "a", ev.Resource)
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event: %v", ev)
	default:
	}
}
