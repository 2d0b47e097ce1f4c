package store

import (
	"sync"

	"github.com/inkrelay/inkrelay/server/internal/canvas"
)

// StrokeLog is a thread-safe, append-only sequence of strokes.
// It is the single source of truth for everything drawn so far. Only the hub
// mutates it; other components read snapshots.
type StrokeLog struct {
	mu      sync.RWMutex
	strokes []canvas.Stroke
}

// New creates an empty StrokeLog.
func New() *StrokeLog {
	return &StrokeLog{}
}

// Append adds s to the end of the log.
func (l *StrokeLog) Append(s canvas.Stroke) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.strokes = append(l.strokes, s)
}

// Snapshot returns a copy of the full history in append order.
// The result is never nil and shares no memory with the log.
func (l *StrokeLog) Snapshot() []canvas.Stroke {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]canvas.Stroke, len(l.strokes))
	copy(out, l.strokes)
	return out
}

// Clear empties the log. Clearing an empty log is a no-op.
func (l *StrokeLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	// Drop the backing array so a long session's history can be collected.
	l.strokes = nil
}

// Len returns the number of strokes currently held.
func (l *StrokeLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.strokes)
}
