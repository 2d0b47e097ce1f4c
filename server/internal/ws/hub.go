package ws

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/inkrelay/inkrelay/server/internal/canvas"
	"github.com/inkrelay/inkrelay/server/internal/store"
)

// Default hub options, used when a field of Options is zero.
const (
	DefaultSendBuffer      = 256
	DefaultMaxMessageBytes = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Allow all origins — callers should apply CORS at the reverse-proxy level.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Options tunes per-client resource limits.
type Options struct {
	// SendBuffer is the per-client outgoing message queue depth.
	SendBuffer int

	// MaxMessageBytes is the largest inbound frame a client may send.
	MaxMessageBytes int64
}

// Stats are cumulative hub counters since start.
type Stats struct {
	Connections uint64 // connections accepted
	Strokes     uint64 // strokes appended and broadcast
	Clears      uint64 // clear events applied
	Dropped     uint64 // inbound events rejected at decode
	Evicted     uint64 // clients disconnected for a full send queue
}

type eventKind int

const (
	evRegister eventKind = iota
	evUnregister
	evStroke
	evClear
)

// event is one unit of work for the hub loop.
type event struct {
	kind   eventKind
	client *client
	stroke canvas.Stroke
}

// Hub relays strokes between WebSocket clients and keeps the stroke log.
type Hub struct {
	strokes *store.StrokeLog
	opts    Options

	events chan event
	done   chan struct{}

	// clients is written only by the Run goroutine; mu lets Count read it
	// from elsewhere.
	mu      sync.RWMutex
	clients map[*client]struct{}

	connections atomic.Uint64
	accepted    atomic.Uint64
	clears      atomic.Uint64
	dropped     atomic.Uint64
	evicted     atomic.Uint64
}

// New creates a Hub that records strokes in log.
func New(log *store.StrokeLog, opts Options) *Hub {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = DefaultSendBuffer
	}
	if opts.MaxMessageBytes <= 0 {
		opts.MaxMessageBytes = DefaultMaxMessageBytes
	}
	return &Hub{
		strokes: log,
		opts:    opts,
		events:  make(chan event),
		done:    make(chan struct{}),
		clients: make(map[*client]struct{}),
	}
}

// Run processes hub events one at a time. It blocks until ctx is cancelled,
// then closes all active connections.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return
		case e := <-h.events:
			h.handle(e)
		}
	}
}

// ServeHTTP upgrades the HTTP connection to WebSocket and serves the client.
// Blocks until the connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already written the error response.
		return
	}

	c := &client{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, h.opts.SendBuffer),
	}
	if !h.submit(event{kind: evRegister, client: c}) {
		conn.Close()
		return
	}
	defer h.submit(event{kind: evUnregister, client: c})

	go c.writePump()
	c.readPump() // blocks until connection closes
}

// Count returns the number of currently connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stats returns a copy of the hub counters.
func (h *Hub) Stats() Stats {
	return Stats{
		Connections: h.connections.Load(),
		Strokes:     h.accepted.Load(),
		Clears:      h.clears.Load(),
		Dropped:     h.dropped.Load(),
		Evicted:     h.evicted.Load(),
	}
}

// --- internal ---------------------------------------------------------------

// submit hands e to the Run loop. It returns false once the hub has stopped.
func (h *Hub) submit(e event) bool {
	select {
	case h.events <- e:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) handle(e event) {
	switch e.kind {
	case evRegister:
		h.register(e.client)
	case evUnregister:
		h.unregister(e.client)
	case evStroke:
		h.strokes.Append(e.stroke)
		h.accepted.Add(1)
		h.broadcast(canvas.EventDrawLine, e.stroke, e.client)
	case evClear:
		h.strokes.Clear()
		h.clears.Add(1)
		slog.Info("hub: canvas cleared", "client", e.client.id)
		h.broadcast(canvas.EventClearCanvas, nil, nil)
	}
}

// register adds c to the broadcast set and queues the snapshot as its first
// message. No other event runs in between, so c never sees a live update
// before its initial state.
func (h *Hub) register(c *client) {
	snapshot := h.strokes.Snapshot()
	data, err := canvas.Encode(canvas.EventInitialLines, snapshot)
	if err != nil {
		slog.Error("hub: encode snapshot failed", "client", c.id, "err", err)
		close(c.send)
		return
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.connections.Add(1)

	// The queue is empty and buffered, so this cannot block.
	c.send <- data

	slog.Info("hub: client connected",
		"client", c.id,
		"remote", c.conn.RemoteAddr().String(),
		"strokes", len(snapshot),
		"clients", h.Count(),
	)
}

func (h *Hub) unregister(c *client) {
	if h.remove(c) {
		slog.Info("hub: client disconnected", "client", c.id, "clients", h.Count())
	}
}

// remove deletes c from the broadcast set and closes its queue, which makes its
// write pump close the connection. It reports whether c was present.
func (h *Hub) remove(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return false
	}
	delete(h.clients, c)
	close(c.send)
	return true
}

// broadcast encodes one frame and offers it to every client except exclude.
// A nil exclude reaches everyone.
func (h *Hub) broadcast(name string, payload any, exclude *client) {
	data, err := canvas.Encode(name, payload)
	if err != nil {
		slog.Error("hub: encode broadcast failed", "event", name, "err", err)
		return
	}

	for c := range h.clients {
		if c == exclude {
			continue
		}
		select {
		case c.send <- data:
		default:
			// Client's outgoing buffer is full — disconnect it.
			h.remove(c)
			h.evicted.Add(1)
			slog.Warn("hub: evicted slow client", "client", c.id, "event", name)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}
