package ws

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/inkrelay/inkrelay/server/internal/canvas"
)

const (
	// writeTimeout is the deadline for a single write to a client.
	writeTimeout = 10 * time.Second

	// pongWait is how long to wait for a pong response before treating the
	// connection as dead.
	pongWait = 60 * time.Second

	// pingPeriod controls how often the server sends WebSocket ping frames.
	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// client is one connected drawing session.
type client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// writePump drains the client's send channel and forwards messages to the
// WebSocket connection. It also sends periodic ping frames. Runs in its own
// goroutine per client.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				// Channel was closed (hub is shutting down or client removed).
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Debug("hub: write failed", "client", c.id, "err", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads client frames, decodes them and hands accepted events to the
// hub in arrival order. Malformed frames are dropped without closing the
// connection. Blocks until the connection closes or the hub stops.
func (c *client) readPump() {
	defer c.conn.Close()
	c.conn.SetReadLimit(c.hub.opts.MaxMessageBytes)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		kind, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("hub: read failed", "client", c.id, "err", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			c.drop(errors.New("binary frame"))
			continue
		}

		in, err := canvas.Decode(frame)
		if err != nil {
			c.drop(err)
			continue
		}

		e := event{client: c}
		switch in.Event {
		case canvas.EventDrawLine:
			e.kind = evStroke
			e.stroke = in.Stroke
		case canvas.EventClearCanvas:
			e.kind = evClear
		}
		if !c.hub.submit(e) {
			return
		}
	}
}

func (c *client) drop(err error) {
	c.hub.dropped.Add(1)
	slog.Debug("hub: dropped event", "client", c.id, "err", err)
}
