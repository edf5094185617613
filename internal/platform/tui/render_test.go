package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/bubble-drone/internal/core"
)

func TestRenderKeepsText(t *testing.T) {
	s := core.NewScreen(20, 3)
	s.DrawText(0, 0, "Score: 10")
	s.DrawTextColored(2, 1, "oo", core.ColorOrange)
	s.DrawTextColored(4, 1, "X", core.ColorBrown)
	s.SetColored(0, 2, '◆', core.ColorBrightWhite)

	out := NewRenderer(1).Render(s)
	for _, want := range []string{"Score: 10", "oo", "X", "◆"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q in %q", want, out)
		}
	}
	if rows := strings.Count(out, "\n") + 1; rows != 3 {
		t.Errorf("Render() rows = %d, expected 3", rows)
	}
}

func TestRenderUnknownColorFallsBack(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.SetColored(0, 0, 'Z', core.Color(200))

	if out := RenderScreen(s); !strings.Contains(out, "Z") {
		t.Errorf("RenderScreen() = %q, expected the cell rune", out)
	}
}
