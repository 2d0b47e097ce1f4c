package api

import "github.com/inkrelay/inkrelay/server/internal/canvas"

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	State   string `json:"state"`
	Clients int    `json:"clients"`
	Strokes int    `json:"strokes"`
}

// StrokesResponse is the payload for GET /api/v1/strokes.
type StrokesResponse struct {
	Strokes     []canvas.Stroke `json:"strokes"`
	Count       int             `json:"count"`
	GeneratedAt string          `json:"generated_at"` // RFC3339
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
