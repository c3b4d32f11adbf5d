package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Event is one entry of the live event feed.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 54 * time.Second
	sendBufferSize = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

// Hub fans dispatched events out to connected websocket clients. Slow clients
// are dropped rather than allowed to block the feed.
type Hub struct {
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan Event
}

// NewHub creates an event-feed hub. Run must be started before use.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Event, sendBufferSize),
	}
}

// Run processes registrations and broadcasts until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case event := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- event:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Broadcast queues an event for every connected client. Never blocks the
// caller; the feed drops events when the hub is saturated.
func (h *Hub) Broadcast(event string, data interface{}) {
	select {
	case h.broadcast <- Event{Event: event, Data: data}:
	default:
		log.Printf("[WSHub] Broadcast buffer full, dropping event %s", event)
	}
}

// Serve upgrades the request and streams events until the client disconnects.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WSHub] Upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan Event, sendBufferSize)}
	h.register <- c

	go c.writePump(h)
	go c.readPump(h)
}

func (c *client) writePump(h *Hub) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client messages; the feed is one-way. Reading is still
// required to notice disconnects and answer pings.
func (c *client) readPump(h *Hub) {
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
