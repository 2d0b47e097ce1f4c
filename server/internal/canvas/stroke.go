package canvas

import "github.com/go-playground/validator/v10"

// Tool selects how a client renders a stroke.
type Tool string

const (
	ToolPen    Tool = "pen"
	ToolEraser Tool = "eraser"
)

// Stroke is one drawn line segment. It is passed by value and never modified
// after Decode returns it. Order is implied by arrival at the server.
type Stroke struct {
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	X2        float64 `json:"x2"`
	Y2        float64 `json:"y2"`
	Color     string  `json:"color"`
	LineWidth float64 `json:"lineWidth"`
	Tool      Tool    `json:"tool"`
}

// strokeWire is the inbound shape of a stroke. Pointers distinguish an absent
// coordinate from a zero one.
type strokeWire struct {
	X1        *float64 `json:"x1" validate:"required"`
	Y1        *float64 `json:"y1" validate:"required"`
	X2        *float64 `json:"x2" validate:"required"`
	Y2        *float64 `json:"y2" validate:"required"`
	Color     *string  `json:"color" validate:"required,min=1,max=64,printascii"`
	LineWidth *float64 `json:"lineWidth" validate:"required,gt=0"`
	Tool      string   `json:"tool" validate:"omitempty,oneof=pen eraser"`
}

var validate = validator.New()

// stroke validates w and converts it into a Stroke with the tool normalized.
func (w strokeWire) stroke() (Stroke, error) {
	if err := validate.Struct(w); err != nil {
		return Stroke{}, err
	}
	tool := Tool(w.Tool)
	if tool == "" {
		tool = ToolPen
	}
	return Stroke{
		X1:        *w.X1,
		Y1:        *w.Y1,
		X2:        *w.X2,
		Y2:        *w.Y2,
		Color:     *w.Color,
		LineWidth: *w.LineWidth,
		Tool:      tool,
	}, nil
}
