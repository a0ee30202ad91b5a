// Package realtime pushes notification events to connected WebSocket clients.
package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
)

// subscriberBuffer is how many events a slow client may lag before drops.
const subscriberBuffer = 16

// Hub fans notification events out to the subscriptions of their owner.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[string]chan domain.NotificationEvent // user id -> conn id -> ch

	connections prometheus.Gauge
	dropped     prometheus.Counter

	done      chan struct{}
	closeOnce sync.Once
}

// NewHub creates an empty hub. Collectors are registered on reg when it is
// not nil.
func NewHub(reg prometheus.Registerer) *Hub {
	h := &Hub{
		subs: make(map[string]map[string]chan domain.NotificationEvent),
		done: make(chan struct{}),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "saasadmin",
			Subsystem: "realtime",
			Name:      "connections",
			Help:      "Number of open realtime subscriptions.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "saasadmin",
			Subsystem: "realtime",
			Name:      "dropped_events_total",
			Help:      "Events dropped because a subscriber was not keeping up.",
		}),
	}
	if reg != nil {
		reg.MustRegister(h.connections, h.dropped)
	}
	return h
}

// Subscribe registers a subscription for userID and returns its id and event
// channel. The channel is closed once ctx ends or the hub is closed.
func (h *Hub) Subscribe(ctx context.Context, userID string) (string, <-chan domain.NotificationEvent) {
	id := uuid.NewString()
	ch := make(chan domain.NotificationEvent, subscriberBuffer)

	h.mu.Lock()
	conns, ok := h.subs[userID]
	if !ok {
		conns = make(map[string]chan domain.NotificationEvent)
		h.subs[userID] = conns
	}
	conns[id] = ch
	h.mu.Unlock()
	h.connections.Inc()

	go func() {
		select {
		case <-ctx.Done():
		case <-h.done:
		}
		h.mu.Lock()
		delete(h.subs[userID], id)
		if len(h.subs[userID]) == 0 {
			delete(h.subs, userID)
		}
		close(ch)
		h.mu.Unlock()
		h.connections.Dec()
	}()

	return id, ch
}

// Publish delivers ev to every subscription of its owner. It never blocks.
func (h *Hub) Publish(ev domain.NotificationEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs[ev.Notification.UserID] {
		select {
		case ch <- ev:
		default:
			h.dropped.Inc()
		}
	}
}

// Close ends every subscription. Connected clients are disconnected.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Subscribers reports how many subscriptions userID currently has.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
