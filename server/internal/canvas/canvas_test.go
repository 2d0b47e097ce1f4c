package canvas

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecode_DrawLine(t *testing.T) {
	in, err := Decode([]byte(`{"event":"drawLine","data":{"x1":0,"y1":0,"x2":10,"y2":10,"color":"#000","lineWidth":2,"tool":"pen"}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if in.Event != EventDrawLine {
		t.Errorf("event: got %q, want %q", in.Event, EventDrawLine)
	}
	want := Stroke{X1: 0, Y1: 0, X2: 10, Y2: 10, Color: "#000", LineWidth: 2, Tool: ToolPen}
	if in.Stroke != want {
		t.Errorf("stroke: got %+v, want %+v", in.Stroke, want)
	}
}

func TestDecode_ToolDefaultsToPen(t *testing.T) {
	cases := map[string]string{
		"absent": `{"event":"drawLine","data":{"x1":1,"y1":2,"x2":3,"y2":4,"color":"red","lineWidth":1}}`,
		"empty":  `{"event":"drawLine","data":{"x1":1,"y1":2,"x2":3,"y2":4,"color":"red","lineWidth":1,"tool":""}}`,
	}
	for name, frame := range cases {
		t.Run(name, func(t *testing.T) {
			in, err := Decode([]byte(frame))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if in.Stroke.Tool != ToolPen {
				t.Errorf("tool: got %q, want pen", in.Stroke.Tool)
			}
		})
	}
}

func TestDecode_Eraser(t *testing.T) {
	in, err := Decode([]byte(`{"event":"drawLine","data":{"x1":1,"y1":2,"x2":3,"y2":4,"color":"#fff","lineWidth":20,"tool":"eraser"}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if in.Stroke.Tool != ToolEraser {
		t.Errorf("tool: got %q, want eraser", in.Stroke.Tool)
	}
}

func TestDecode_ZeroCoordinatesAccepted(t *testing.T) {
	_, err := Decode([]byte(`{"event":"drawLine","data":{"x1":0,"y1":0,"x2":0,"y2":0,"color":"#000","lineWidth":0.5}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
}

func TestDecode_ClearCanvas(t *testing.T) {
	for _, frame := range []string{
		`{"event":"clearCanvas"}`,
		`{"event":"clearCanvas","data":null}`,
		`{"event":"clearCanvas","data":{"ignored":true}}`,
	} {
		in, err := Decode([]byte(frame))
		if err != nil {
			t.Fatalf("Decode(%s): %v", frame, err)
		}
		if in.Event != EventClearCanvas {
			t.Errorf("event: got %q, want clearCanvas", in.Event)
		}
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":          `hello`,
		"array":             `[1,2,3]`,
		"no event":          `{"data":{}}`,
		"no data":           `{"event":"drawLine"}`,
		"data not object":   `{"event":"drawLine","data":"x"}`,
		"missing x1":        `{"event":"drawLine","data":{"y1":0,"x2":1,"y2":1,"color":"#000","lineWidth":1}}`,
		"string coordinate": `{"event":"drawLine","data":{"x1":"0","y1":0,"x2":1,"y2":1,"color":"#000","lineWidth":1}}`,
		"missing color":     `{"event":"drawLine","data":{"x1":0,"y1":0,"x2":1,"y2":1,"lineWidth":1}}`,
		"empty color":       `{"event":"drawLine","data":{"x1":0,"y1":0,"x2":1,"y2":1,"color":"","lineWidth":1}}`,
		"numeric color":     `{"event":"drawLine","data":{"x1":0,"y1":0,"x2":1,"y2":1,"color":7,"lineWidth":1}}`,
		"zero width":        `{"event":"drawLine","data":{"x1":0,"y1":0,"x2":1,"y2":1,"color":"#000","lineWidth":0}}`,
		"negative width":    `{"event":"drawLine","data":{"x1":0,"y1":0,"x2":1,"y2":1,"color":"#000","lineWidth":-3}}`,
		"missing width":     `{"event":"drawLine","data":{"x1":0,"y1":0,"x2":1,"y2":1,"color":"#000"}}`,
		"unknown tool":      `{"event":"drawLine","data":{"x1":0,"y1":0,"x2":1,"y2":1,"color":"#000","lineWidth":1,"tool":"spray"}}`,
		"null data":         `{"event":"drawLine","data":null}`,
	}
	for name, frame := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(frame))
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("err: got %v, want ErrMalformed", err)
			}
		})
	}
}

func TestDecode_UnknownEvent(t *testing.T) {
	for _, ev := range []string{"initialLines", "undo", "DRAWLINE"} {
		_, err := Decode([]byte(`{"event":"` + ev + `"}`))
		if !errors.Is(err, ErrUnknownEvent) {
			t.Errorf("%s: got %v, want ErrUnknownEvent", ev, err)
		}
	}
}

func TestEncode_InitialLines(t *testing.T) {
	strokes := []Stroke{
		{X1: 1, Y1: 2, X2: 3, Y2: 4, Color: "#111", LineWidth: 1, Tool: ToolPen},
		{X1: 5, Y1: 6, X2: 7, Y2: 8, Color: "#222", LineWidth: 9, Tool: ToolEraser},
	}
	frame, err := Encode(EventInitialLines, strokes)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(frame, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Event != EventInitialLines {
		t.Errorf("event: got %q, want initialLines", msg.Event)
	}
	var got []Stroke
	if err := json.Unmarshal(msg.Data, &got); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if len(got) != 2 || got[0] != strokes[0] || got[1] != strokes[1] {
		t.Errorf("data: got %+v, want %+v", got, strokes)
	}
}

func TestEncode_EmptySnapshotIsArray(t *testing.T) {
	frame, err := Encode(EventInitialLines, []Stroke{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(frame) != `{"event":"initialLines","data":[]}` {
		t.Errorf("frame: got %s", frame)
	}
}

func TestEncode_ClearOmitsData(t *testing.T) {
	frame, err := Encode(EventClearCanvas, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(frame) != `{"event":"clearCanvas"}` {
		t.Errorf("frame: got %s, want {\"event\":\"clearCanvas\"}", frame)
	}
}

func TestEncode_StrokeFieldNames(t *testing.T) {
	frame, err := Encode(EventDrawLine, Stroke{X1: 0, Y1: 0, X2: 10, Y2: 10, Color: "#000", LineWidth: 2, Tool: ToolPen})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{"event":"drawLine","data":{"x1":0,"y1":0,"x2":10,"y2":10,"color":"#000","lineWidth":2,"tool":"pen"}}`
	if string(frame) != want {
		t.Errorf("frame:\n got %s\nwant %s", frame, want)
	}
}
