package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bubble-drone/internal/core"
)

// palette maps core.Color to terminal colors. Orange and brown come from the
// 256-color cube so bubbles stay distinct from red terrain and spines.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:          "1",
	core.ColorGreen:        "2",
	core.ColorYellow:       "3",
	core.ColorBlue:         "4",
	core.ColorMagenta:      "5",
	core.ColorCyan:         "6",
	core.ColorWhite:        "7",
	core.ColorBrightRed:    "9",
	core.ColorBrightGreen:  "10",
	core.ColorBrightYellow: "11",
	core.ColorBrightWhite:  "15",
	core.ColorOrange:       "208",
	core.ColorGray:         "245",
	core.ColorBrown:        "130",
}

// statusBackground is the background of the HUD rows.
const statusBackground = lipgloss.Color("236")

// Renderer converts Screen buffers to styled strings.
// The first StatusRows rows are drawn as a status bar.
type Renderer struct {
	StatusRows int

	field  map[core.Color]lipgloss.Style
	status map[core.Color]lipgloss.Style
}

// NewRenderer creates a renderer with statusRows rows of status bar.
func NewRenderer(statusRows int) *Renderer {
	r := &Renderer{
		StatusRows: statusRows,
		field:      make(map[core.Color]lipgloss.Style, len(palette)+1),
		status:     make(map[core.Color]lipgloss.Style, len(palette)+1),
	}
	r.field[core.ColorDefault] = lipgloss.NewStyle()
	r.status[core.ColorDefault] = lipgloss.NewStyle().Background(statusBackground).Bold(true)
	for c, fg := range palette {
		r.field[c] = lipgloss.NewStyle().Foreground(fg)
		r.status[c] = r.status[core.ColorDefault].Foreground(fg)
	}
	return r
}

func (r *Renderer) style(c core.Color, statusRow bool) lipgloss.Style {
	styles := r.field
	if statusRow {
		styles = r.status
	}
	if s, ok := styles[c]; ok {
		return s
	}
	return styles[core.ColorDefault]
}

// Render converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one styled run to keep the
// number of escape sequences down.
func (r *Renderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		statusRow := y < r.StatusRows

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(r.style(color, statusRow).Render(run.String()))
		}
	}
	return sb.String()
}

var plain = NewRenderer(0)

// RenderScreen renders s without a status bar.
func RenderScreen(s *core.Screen) string {
	return plain.Render(s)
}
