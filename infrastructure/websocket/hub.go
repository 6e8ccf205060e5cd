package websocket

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"cardapio-digital/domain/ports"
	"cardapio-digital/pkg/logger"
)

const (
	MessageCatalogChanged = "catalog_changed"
	MessagePing           = "ping"
	MessagePong           = "pong"
)

// Conn is the part of *websocket.Conn the hub writes to
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type client struct {
	id   uuid.UUID
	conn Conn
}

// Hub keeps the storefront and admin clients that follow catalog changes
type Hub struct {
	clients    map[Conn]client
	register   chan client
	unregister chan Conn
	broadcast  chan Message
	done       chan struct{}
	stopOnce   sync.Once
	mutex      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[Conn]client),
		register:   make(chan client),
		unregister: make(chan Conn),
		broadcast:  make(chan Message, 64),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until Stop is called
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mutex.Lock()
			h.clients[c.conn] = c
			h.mutex.Unlock()
			logger.Debug("WebSocket client connected", "client_id", c.id.String())

		case conn := <-h.unregister:
			h.remove(conn)

		case msg := <-h.broadcast:
			h.mutex.RLock()
			conns := make([]Conn, 0, len(h.clients))
			for conn := range h.clients {
				conns = append(conns, conn)
			}
			h.mutex.RUnlock()

			for _, conn := range conns {
				if err := conn.WriteJSON(msg); err != nil {
					logger.Warn("WebSocket send failed", "error", err)
					h.remove(conn)
				}
			}

		case <-h.done:
			h.mutex.Lock()
			for conn := range h.clients {
				conn.Close()
			}
			h.clients = make(map[Conn]client)
			h.mutex.Unlock()
			return
		}
	}
}

func (h *Hub) remove(conn Conn) {
	h.mutex.Lock()
	c, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
	}
	h.mutex.Unlock()

	if ok {
		conn.Close()
		logger.Debug("WebSocket client disconnected", "client_id", c.id.String())
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) Register(conn Conn) {
	select {
	case h.register <- client{id: uuid.New(), conn: conn}:
	case <-h.done:
	}
}

func (h *Hub) Unregister(conn Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// BroadcastCatalogChanged implements ports.CatalogBroadcaster
func (h *Hub) BroadcastCatalogChanged(event *ports.CatalogChangedEvent) {
	if event == nil {
		return
	}
	select {
	case h.broadcast <- Message{Type: MessageCatalogChanged, Data: event}:
	case <-h.done:
	default:
		logger.Warn("WebSocket broadcast queue full, dropping catalog change",
			"entity", event.Entity,
			"entity_id", event.EntityID,
		)
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// HandleMessage answers client pings; anything else is ignored
func (h *Hub) HandleMessage(conn Conn, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		logger.Debug("WebSocket message is not JSON", "error", err)
		return
	}
	if msg.Type == MessagePing {
		if err := conn.WriteJSON(Message{Type: MessagePong}); err != nil {
			logger.Debug("WebSocket pong failed", "error", err)
		}
	}
}
