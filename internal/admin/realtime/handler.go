package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
	"github.com/aussiebroadwan/saasadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/saasadmin/pkg/httpx"
	"github.com/aussiebroadwan/saasadmin/pkg/slogx"
)

const (
	defaultPingInterval = 30 * time.Second
	writeWait           = 10 * time.Second
)

// Handler upgrades authenticated requests to a WebSocket and streams the
// caller's notification events until either side goes away. It must sit
// behind httpx.AuthnMiddleware.
type Handler struct {
	Hub          *Hub
	PingInterval time.Duration

	// CheckOrigin is handed to the upgrader; nil accepts any origin.
	CheckOrigin func(r *http.Request) bool
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		adminsdk.ErrAuthorizationRequired.WriteError(w)
		return
	}

	checkOrigin := h.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	upgrader := websocket.Upgrader{CheckOrigin: checkOrigin}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		slogx.FromContext(r.Context()).Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	connID, events := h.Hub.Subscribe(ctx, userID)
	log := slogx.FromContext(r.Context()).With(slog.String("conn_id", connID))
	log.Info("realtime client connected")
	defer log.Info("realtime client disconnected")

	ping := h.PingInterval
	if ping <= 0 {
		ping = defaultPingInterval
	}
	pongWait := 2 * ping

	go readLoop(conn, pongWait, cancel)

	ticker := time.NewTicker(ping)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(toWire(ev)); err != nil {
				log.Debug("realtime write failed", slog.Any("error", err))
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// readLoop drains client frames so pongs and close frames are processed, and
// cancels once the peer stops answering.
func readLoop(conn *websocket.Conn, pongWait time.Duration, cancel context.CancelFunc) {
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func toWire(ev domain.NotificationEvent) adminsdk.NotificationEvent {
	n := ev.Notification
	return adminsdk.NotificationEvent{
		Type: ev.Type,
		Notification: adminsdk.Notification{
			ID:        n.ID,
			UserID:    n.UserID,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
		},
	}
}
