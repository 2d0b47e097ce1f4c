package store

import (
	"sync"
	"testing"

	"github.com/inkrelay/inkrelay/server/internal/canvas"
)

func stroke(n float64) canvas.Stroke {
	return canvas.Stroke{X1: n, Y1: n, X2: n + 1, Y2: n + 1, Color: "#000", LineWidth: 2, Tool: canvas.ToolPen}
}

func TestSnapshot_Empty(t *testing.T) {
	l := New()
	got := l.Snapshot()
	if got == nil {
		t.Fatal("Snapshot: got nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("Snapshot: got %d strokes, want 0", len(got))
	}
}

func TestAppend_PreservesOrder(t *testing.T) {
	l := New()
	for i := 0; i < 10; i++ {
		l.Append(stroke(float64(i)))
	}

	got := l.Snapshot()
	if len(got) != 10 {
		t.Fatalf("Snapshot: got %d strokes, want 10", len(got))
	}
	for i, s := range got {
		if s != stroke(float64(i)) {
			t.Errorf("Snapshot[%d]: got %+v, want %+v", i, s, stroke(float64(i)))
		}
	}
	if n := l.Len(); n != 10 {
		t.Errorf("Len: got %d, want 10", n)
	}
}

func TestSnapshot_IsCopy(t *testing.T) {
	l := New()
	l.Append(stroke(1))

	snap := l.Snapshot()
	snap[0].Color = "#fff"
	l.Append(stroke(2))

	got := l.Snapshot()
	if got[0].Color != "#000" {
		t.Errorf("log mutated through snapshot: color %q", got[0].Color)
	}
	if len(snap) != 1 {
		t.Errorf("earlier snapshot grew: got %d, want 1", len(snap))
	}
}

func TestClear_ResetsLog(t *testing.T) {
	l := New()
	for i := 0; i < 5; i++ {
		l.Append(stroke(float64(i)))
	}
	l.Clear()

	if n := len(l.Snapshot()); n != 0 {
		t.Errorf("Snapshot after Clear: got %d strokes, want 0", n)
	}

	l.Append(stroke(42))
	got := l.Snapshot()
	if len(got) != 1 || got[0] != stroke(42) {
		t.Errorf("Snapshot after Clear+Append: got %+v", got)
	}
}

func TestClear_Idempotent(t *testing.T) {
	l := New()
	l.Append(stroke(1))
	l.Clear()
	l.Clear()

	if n := l.Len(); n != 0 {
		t.Errorf("Len after double Clear: got %d, want 0", n)
	}
	if got := l.Snapshot(); got == nil || len(got) != 0 {
		t.Errorf("Snapshot after double Clear: got %#v", got)
	}
}

func TestSnapshot_HeldBeforeClear(t *testing.T) {
	l := New()
	l.Append(stroke(1))
	l.Append(stroke(2))

	snap := l.Snapshot()
	l.Clear()

	if len(snap) != 2 {
		t.Errorf("snapshot taken before Clear: got %d strokes, want 2", len(snap))
	}
}

func TestConcurrentAppendAndSnapshot(t *testing.T) {
	l := New()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			l.Append(stroke(float64(n)))
		}(i)
		go func() {
			defer wg.Done()
			for _, s := range l.Snapshot() {
				// Every entry must be a complete stroke.
				if s.Color != "#000" || s.LineWidth != 2 || s.X2 != s.X1+1 {
					t.Errorf("partial stroke in snapshot: %+v", s)
				}
			}
		}()
	}
	wg.Wait()

	if n := l.Len(); n != 50 {
		t.Errorf("Len after concurrent appends: got %d, want 50", n)
	}
}

func TestConcurrentMixedOps(t *testing.T) {
	l := New()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			l.Append(stroke(1))
		}()
		go func() {
			defer wg.Done()
			l.Snapshot()
		}()
		go func() {
			defer wg.Done()
			l.Clear()
		}()
	}
	wg.Wait()
}
