package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		name      string
		steps     []string
		wantBoxes int
		wantLines int
	}{
		{name: "default flow", steps: []string{"Start", "Process", "End"}, wantBoxes: 3, wantLines: 2},
		{name: "single step", steps: []string{"Start"}, wantBoxes: 1, wantLines: 0},
		{name: "no steps", steps: nil, wantBoxes: 0, wantLines: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commands := Layout(tt.steps)

			var boxes, texts, lines int
			for _, cmd := range commands {
				switch cmd.Type {
				case "rectangle":
					boxes++
				case "text":
					texts++
				case "line":
					lines++
				}
			}

			assert.Equal(t, tt.wantBoxes, boxes)
			assert.Equal(t, tt.wantBoxes, texts, "one label per box")
			assert.Equal(t, tt.wantLines, lines)
			assert.Len(t, commands, boxes+texts+lines)
		})
	}
}

func TestLayout_Geometry(t *testing.T) {
	commands := Layout([]string{"Start", "End"})
	require.Len(t, commands, 5)

	first := commands[0]
	assert.Equal(t, "rectangle", first.Type)
	assert.Equal(t, 50.0, first.X)
	assert.Equal(t, 50.0, first.Y)
	assert.Equal(t, 200.0, first.Width)
	assert.Equal(t, 100.0, first.Height)

	label := commands[1]
	assert.Equal(t, "text", label.Type)
	assert.Equal(t, "Start", label.Text)
	assert.Equal(t, 150.0, label.X, "label centered horizontally")
	assert.Equal(t, 105.0, label.Y)

	connector := commands[2]
	assert.Equal(t, "line", connector.Type)
	assert.Equal(t, 250.0, connector.StartX)
	assert.Equal(t, 100.0, connector.StartY)
	assert.Equal(t, 300.0, connector.EndX)
	assert.Equal(t, 100.0, connector.EndY)

	second := commands[3]
	assert.Equal(t, "rectangle", second.Type)
	assert.Equal(t, 300.0, second.X, "boxes advance by width plus spacing")
}
