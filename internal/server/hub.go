package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/deckworks/agentdeck/internal/core/logging"
	"github.com/deckworks/agentdeck/internal/core/notify"
)

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans notification lifecycle events out to connected websocket clients.
// Broadcast is compatible with notify.Subscriber and is wired to the center
// at server construction.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
	log   zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]struct{}),
		log:   logging.Component("ws-hub"),
	}
}

// Broadcast sends an event to every connected client. Clients that fail the
// write within writeTimeout are dropped.
func (h *Hub) Broadcast(e notify.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to encode event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Warn().Err(err).Msg("dropping slow websocket client")
			_ = conn.Close()
			delete(h.conns, conn)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Handle upgrades the request and keeps the connection registered until the
// client disconnects. Incoming messages are discarded; the feed is one-way.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	h.log.Debug().
		Str("remote", conn.RemoteAddr().String()).
		Int("clients", h.ClientCount()).
		Msg("client connected")

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		_ = conn.Close()
		h.log.Debug().
			Str("remote", conn.RemoteAddr().String()).
			Int("clients", h.ClientCount()).
			Msg("client disconnected")
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Msg("websocket read")
			}
			return
		}
	}
}
