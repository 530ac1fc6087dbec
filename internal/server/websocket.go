// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/deep-research/internal/research"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Local demo widget; all origins accepted.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub broadcasts pipeline progress events to every connected websocket
// client. Writes to a connection are serialized with a per-connection mutex.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
	log     *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*sync.Mutex),
		log:     log,
	}
}

// Handle upgrades the request and keeps the connection registered until the
// client goes away. Inbound messages are drained and ignored; the feed is
// one-way.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Error("websocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[conn] = &sync.Mutex{}
	h.mu.Unlock()
	h.log.WithField("remote", conn.RemoteAddr().String()).Debug("websocket client connected")

	defer h.remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends one progress event to all clients. Clients that fail the
// write are dropped.
func (h *Hub) Broadcast(e research.Event) {
	h.mu.RLock()
	conns := make(map[*websocket.Conn]*sync.Mutex, len(h.clients))
	for conn, mu := range h.clients {
		conns[conn] = mu
	}
	h.mu.RUnlock()

	for conn, mu := range conns {
		mu.Lock()
		err := conn.WriteJSON(e)
		mu.Unlock()
		if err != nil {
			h.log.WithError(err).Debug("dropping websocket client")
			h.remove(conn)
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mu.Unlock()
}
