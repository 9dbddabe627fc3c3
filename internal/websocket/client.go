package websocket

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10 // must stay below pongWait
	maxMessageSize = 512

	// sendBuffer is how many events may queue for one subscriber before it
	// is considered too slow and dropped
	sendBuffer = 64
)

// ErrSlowClient is returned by Send when the client's queue is full. The
// client is closed when this happens.
var ErrSlowClient = errors.New("client is too slow")

// Client is one websocket subscriber of a room. The feed is one-way:
// events flow out, inbound frames are only read for control messages.
type Client struct {
	id   string
	room string
	conn *websocket.Conn
	hub  *Hub
	send chan []byte

	mu      sync.Mutex
	stopped bool
	slow    bool

	connOnce sync.Once
}

// NewClient creates a client for conn subscribed to room
func NewClient(conn *websocket.Conn, room string, hub *Hub) *Client {
	return &Client{
		id:   uuid.New().String(),
		room: room,
		conn: conn,
		hub:  hub,
		send: make(chan []byte, sendBuffer),
	}
}

// ID returns the client's unique identifier
func (c *Client) ID() string {
	return c.id
}

// Room returns the room the client subscribed to
func (c *Client) Room() string {
	return c.room
}

// Send queues an event without blocking. A full queue stops the client.
func (c *Client) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return ErrClientClosed
	}

	select {
	case c.send <- data:
		return nil
	default:
		c.slow = true
		c.stopLocked()
		return ErrSlowClient
	}
}

// Close stops delivery and closes the connection. It may be called from any
// goroutine, any number of times.
func (c *Client) Close() error {
	c.mu.Lock()
	c.stopLocked()
	c.mu.Unlock()

	var err error
	c.connOnce.Do(func() {
		err = c.conn.Close()
	})
	return err
}

// IsClosed reports whether the client stopped accepting events
func (c *Client) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

func (c *Client) stopLocked() {
	if !c.stopped {
		c.stopped = true
		close(c.send)
	}
}

func (c *Client) isSlow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slow
}

// ReadPump keeps the read side alive so pongs and close frames are
// processed. It unregisters the client when the peer goes away.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Warn().
					Err(err).
					Str("client_id", c.id).
					Str("room", c.room).
					Msg("WebSocket unexpected close")
			}
			return
		}
	}
}

// WritePump delivers queued events and pings the peer every pingPeriod
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, c.closeFrame())
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Warn().
					Err(err).
					Str("client_id", c.id).
					Str("room", c.room).
					Msg("WebSocket write error")
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

func (c *Client) closeFrame() []byte {
	if c.isSlow() {
		return websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "too slow")
	}
	return websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
}
