// Package canvas defines the stroke data model and the JSON wire protocol
// spoken between inkrelay-server and drawing clients.
//
// Every WebSocket text frame carries one envelope:
//
//	{
//	  "event": "drawLine",
//	  "data":  { "x1": 0, "y1": 0, "x2": 10, "y2": 10,
//	             "color": "#000", "lineWidth": 2, "tool": "pen" }
//	}
//
// Events:
//   - initialLines: server → one client, data is []Stroke, sent once on connect
//   - drawLine:     client → server → every other client, data is a Stroke
//   - clearCanvas:  client → server → every client, no data
//
// Decode validates inbound frames at the boundary. Anything it rejects is
// wrapped in ErrMalformed or ErrUnknownEvent and never reaches the stroke log.
package canvas
