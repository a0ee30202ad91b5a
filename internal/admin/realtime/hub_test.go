package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
)

func event(userID, msg string) domain.NotificationEvent {
	return domain.NotificationEvent{
		Type:         domain.EventNotificationCreated,
		Notification: domain.Notification{ID: "n-" + msg, UserID: userID, Message: msg},
	}
}

func TestHub_RoutesByUser(t *testing.T) {
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, alice := h.Subscribe(ctx, "alice")
	_, bob := h.Subscribe(ctx, "bob")

	h.Publish(event("alice", "hello"))

	select {
	case ev := <-alice:
		require.Equal(t, "hello", ev.Notification.Message)
	case <-time.After(time.Second):
		t.Fatal("alice did not receive her event")
	}
	select {
	case ev := <-bob:
		t.Fatalf("bob received %+v", ev)
	default:
	}
}

func TestHub_UnsubscribeOnCancel(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewHub(reg)

	ctx, cancel := context.WithCancel(context.Background())
	_, ch := h.Subscribe(ctx, "alice")
	require.Equal(t, 1, h.Subscribers("alice"))
	require.Equal(t, 1.0, testutil.ToFloat64(h.connections))

	cancel()
	_, open := <-ch
	require.False(t, open)
	require.Equal(t, 0, h.Subscribers("alice"))
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(h.connections) == 0
	}, time.Second, 10*time.Millisecond)

	// Publishing with nobody listening is a no-op.
	h.Publish(event("alice", "late"))
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, ch := h.Subscribe(ctx, "alice")

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			h.Publish(event("alice", "spam"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
	require.Len(t, ch, subscriberBuffer)
	require.Equal(t, float64(subscriberBuffer*2), testutil.ToFloat64(h.dropped))
}

func TestHub_CloseEndsSubscriptions(t *testing.T) {
	h := NewHub(nil)

	_, a := h.Subscribe(context.Background(), "alice")
	_, b := h.Subscribe(context.Background(), "bob")

	h.Close()
	h.Close()

	for _, ch := range []<-chan domain.NotificationEvent{a, b} {
		select {
		case _, open := <-ch:
			require.False(t, open)
		case <-time.After(time.Second):
			t.Fatal("subscription not closed")
		}
	}
}
