// Package api implements the HTTP REST API and metrics endpoint for
// inkrelay-server.
//
// New(log, hub) returns an http.Handler that serves:
//
//	GET /api/v1/health   — connected clients and stored stroke count
//	GET /api/v1/strokes  — the current snapshot, as a joining client receives it
//	GET /metrics         — Prometheus text exposition of hub and log counters
//
// All /api/v1 endpoints respond with Content-Type: application/json and
// return 405 for non-GET methods. The handler only reads; strokes are written
// exclusively through the WebSocket hub.
package api
