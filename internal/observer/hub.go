// Package observer streams tape appends to websocket clients, giving
// the headless kernel a live view without a rendering surface.
package observer

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/riskforge/risksim/internal/stack"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// TapeEntry is the wire form of one recorded element.
type TapeEntry struct {
	Seq   int    `json:"seq"`
	Depth int    `json:"depth"`
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Text  string `json:"text"`
	Level bool   `json:"level"`
}

// NewTapeEntry builds the wire form of a tape element.
func NewTapeEntry(seq, depth int, el stack.Element) TapeEntry {
	return TapeEntry{
		Seq:   seq,
		Depth: depth,
		Kind:  string(el.ElementKind()),
		Name:  el.ElementName(),
		Text:  el.String(),
		Level: stack.IsLevel(el),
	}
}

// Client is one connected spectator.
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans tape entries out to every connected client.
type Hub struct {
	logger *zap.Logger

	mu         sync.RWMutex
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a hub. Call Run in a goroutine before serving clients.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run dispatches registrations and broadcasts until Close is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			if h.logger != nil {
				h.logger.Debug("observer client connected")
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			if h.logger != nil {
				h.logger.Debug("observer client disconnected")
			}

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Close shuts the hub down and disconnects every client.
func (h *Hub) Close() {
	close(h.done)
}

// Publish sends one tape element to every connected client.
func (h *Hub) Publish(seq, depth int, el stack.Element) {
	payload, err := json.Marshal(NewTapeEntry(seq, depth, el))
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("failed to encode tape entry", zap.Error(err))
		}
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		if h.logger != nil {
			h.logger.Warn("observer broadcast buffer full, dropping entry", zap.Int("seq", seq))
		}
	}
}

// ServeWS upgrades an HTTP request into a spectator connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("websocket upgrade failed", zap.Error(err))
		}
		return
	}

	client := &Client{conn: conn, send: make(chan []byte, 64)}
	h.register <- client

	go client.writePump(h)
	go client.readPump(h)
}

func (c *Client) writePump(h *Hub) {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// readPump drains (and discards) client messages so pings and closes
// are processed.
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Serve attaches the hub at /ws and serves until the listener fails.
func (h *Hub) Serve(address string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	if h.logger != nil {
		h.logger.Info("observer listening", zap.String("address", address))
	}
	return http.ListenAndServe(address, mux)
}
