// Package diagram lays out a linear flowchart as drawing commands for the
// canvas, used by the cleanup endpoint.
package diagram

// Command is one drawing instruction. Type is "rectangle", "text" or "line";
// only the fields relevant to the type are populated.
type Command struct {
	Type      string  `json:"type"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	StartX    float64 `json:"startX,omitempty"`
	StartY    float64 `json:"startY,omitempty"`
	EndX      float64 `json:"endX,omitempty"`
	EndY      float64 `json:"endY,omitempty"`
	Text      string  `json:"text,omitempty"`
	FontSize  int     `json:"fontSize,omitempty"`
	Color     string  `json:"color,omitempty"`
	LineWidth int     `json:"lineWidth,omitempty"`
}

// DefaultSteps is the placeholder process rendered when no structure is
// recognised in the sketch.
var DefaultSteps = []string{"Start", "Process", "End"}

const (
	boxWidth  = 200.0
	boxHeight = 100.0
	spacing   = 50.0
	originX   = 50.0
	originY   = 50.0
)

// Layout turns an ordered list of process steps into boxes with centered
// labels, connected left to right.
func Layout(steps []string) []Command {
	commands := make([]Command, 0, 3*len(steps))
	x, y := originX, originY

	for i, step := range steps {
		commands = append(commands, Command{
			Type:      "rectangle",
			X:         x,
			Y:         y,
			Width:     boxWidth,
			Height:    boxHeight,
			Color:     "#000000",
			LineWidth: 2,
		})
		commands = append(commands, Command{
			Type:     "text",
			X:        x + boxWidth/2,
			Y:        y + boxHeight/2 + 5,
			Text:     step,
			FontSize: 14,
			Color:    "#000000",
		})
		if i < len(steps)-1 {
			commands = append(commands, Command{
				Type:      "line",
				StartX:    x + boxWidth,
				StartY:    y + boxHeight/2,
				EndX:      x + boxWidth + spacing,
				EndY:      y + boxHeight/2,
				Color:     "#000000",
				LineWidth: 2,
			})
		}
		x += boxWidth + spacing
	}

	return commands
}
