package canvas

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Event names carried in the envelope's "event" field.
const (
	EventInitialLines = "initialLines"
	EventDrawLine     = "drawLine"
	EventClearCanvas  = "clearCanvas"
)

var (
	// ErrMalformed reports a frame that is not a well-formed envelope or whose
	// payload does not have the stroke shape.
	ErrMalformed = errors.New("malformed event")

	// ErrUnknownEvent reports an event name clients are not allowed to send.
	ErrUnknownEvent = errors.New("unknown event")
)

// Message is the JSON envelope for every frame in both directions.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Inbound is a decoded client event. Stroke is set only for EventDrawLine.
type Inbound struct {
	Event  string
	Stroke Stroke
}

// Decode parses one client frame. Only drawLine and clearCanvas are accepted.
func Decode(frame []byte) (Inbound, error) {
	var msg Message
	if err := json.Unmarshal(frame, &msg); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch msg.Event {
	case EventDrawLine:
		if len(msg.Data) == 0 {
			return Inbound{}, fmt.Errorf("%w: drawLine without data", ErrMalformed)
		}
		var w strokeWire
		if err := json.Unmarshal(msg.Data, &w); err != nil {
			return Inbound{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		s, err := w.stroke()
		if err != nil {
			return Inbound{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return Inbound{Event: EventDrawLine, Stroke: s}, nil

	case EventClearCanvas:
		return Inbound{Event: EventClearCanvas}, nil

	case "":
		return Inbound{}, fmt.Errorf("%w: missing event name", ErrMalformed)

	default:
		return Inbound{}, fmt.Errorf("%w: %q", ErrUnknownEvent, msg.Event)
	}
}

// Encode builds an outbound frame. A nil payload omits "data".
func Encode(event string, payload any) ([]byte, error) {
	msg := Message{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", event, err)
		}
		msg.Data = data
	}
	return json.Marshal(msg)
}
