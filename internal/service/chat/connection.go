package chat

import (
	"sync"

	"github.com/gorilla/websocket"
)

const sendBuffer = 256

type (
	// Connection wraps a websocket with a buffered outbound queue so that a
	// slow reader never stalls the hub's fan-out.
	Connection struct {
		ws *websocket.Conn

		mu     sync.Mutex
		send   chan []byte
		closed bool
	}
)

func NewConnection(ws *websocket.Conn) *Connection {
	return &Connection{
		ws:   ws,
		send: make(chan []byte, sendBuffer),
	}
}

// Enqueue offers a payload to the outbound queue without blocking. A full
// queue or a closed connection drops the payload; the message stays
// retrievable through history either way.
func (c *Connection) Enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// WritePump drains the outbound queue onto the websocket. It returns when
// the queue is closed or a write fails.
func (c *Connection) WritePump() {
	for payload := range c.send {
		if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
			break
		}
	}
	c.ws.Close()
}

// Close shuts the outbound queue. Safe to call more than once and
// concurrently with Enqueue.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
