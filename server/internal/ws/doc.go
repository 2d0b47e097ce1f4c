// Package ws implements the WebSocket sync hub for inkrelay-server.
//
// Hub owns the set of connected drawing clients and is the only writer of the
// stroke log. A single goroutine (Run) processes every register, unregister,
// stroke and clear event in order, so an append and the broadcast that follows
// it are never interleaved with another event.
//
// New(log, opts) creates a Hub.
// Hub.Run(ctx) runs the event loop. It blocks until ctx is cancelled, then
// closes all active connections.
// Hub.ServeHTTP upgrades an HTTP connection to WebSocket, queues the current
// snapshot as an initialLines message, then relays live events.
//
// Fan-out is best-effort. Each client has a bounded outbound queue; a client
// whose queue is full is disconnected rather than allowed to stall the loop.
// It receives a fresh snapshot when it reconnects.
//
// The upgrader accepts all origins. Apply CORS restrictions at the reverse
// proxy level.
package ws
