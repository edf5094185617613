package drone

import (
	"fmt"
	"math"

	"github.com/vovakirdan/bubble-drone/internal/bubble"
	"github.com/vovakirdan/bubble-drone/internal/core"
)

// Visual characters for rendering
const (
	TerrainChar = '█'
	DyeChar     = '░'
	SpineChar   = '▲'
	FinishChar  = '▌'
	BeeChar     = 'B'
	BulletChar  = '•'
	DroneChar   = '◆'
	WreckChar   = 'X'
	PopChar     = '*'
	ShieldChar  = '·'
)

// hudRows is the number of rows above the playfield.
const hudRows = 1

// ColumnsPerUnit is how many terminal columns one world unit spans.
// Cells are about twice as tall as wide, so x is doubled.
const ColumnsPerUnit = 2

// camera maps world positions to screen cells.
type camera struct {
	x, y float64 // world position of the top-left visible point
}

// newCamera centers the view on focus, clamped to the level bounds.
func newCamera(focus core.Vec2, bounds core.Box, viewW, viewH int) camera {
	w := float64(viewW) / ColumnsPerUnit
	h := float64(viewH)
	return camera{
		x: follow(focus.X, w, bounds.X, bounds.Right()),
		y: follow(focus.Y, h, bounds.Y, bounds.Bottom()),
	}
}

func follow(focus, view, lo, hi float64) float64 {
	if hi-lo <= view {
		return lo
	}
	return core.ClampF(focus-view/2, lo, hi-view)
}

// cell converts a world point to screen coordinates.
func (c camera) cell(p core.Vec2) (int, int) {
	x := int(math.Floor((p.X - c.x) * ColumnsPerUnit))
	y := int(math.Floor(p.Y-c.y)) + hudRows
	return x, y
}

// fillBox draws every cell covered by b.
func (c camera) fillBox(dst *core.Screen, b core.Box, r rune, color core.Color) {
	x0, y0 := c.cell(core.V(b.X, b.Y))
	x1, y1 := c.cell(core.V(b.Right(), b.Bottom()))
	for y := max(y0, hudRows); y < y1; y++ {
		for x := max(x0, 0); x < x1; x++ {
			dst.SetColored(x, y, r, color)
		}
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}
	if g.drone == nil {
		dst.DrawTextCentered(dst.Height()/2, "No levels to play")
		return
	}

	cam := newCamera(g.drone.Position(), g.lvl.Bounds, dst.Width(), dst.Height()-hudRows)

	g.renderLevel(dst, cam)
	g.renderHazards(dst, cam)
	g.renderBubbles(dst, cam)
	g.renderDrone(dst, cam)
	g.renderHUD(dst)
	g.renderOverlay(dst)
}

// renderLevel draws terrain, dye zones and the finish line.
func (g *Game) renderLevel(dst *core.Screen, cam camera) {
	for _, z := range g.course.Zones {
		cam.fillBox(dst, z.Box, DyeChar, z.Color.Color())
	}
	cam.fillBox(dst, g.lvl.Finish, FinishChar, core.ColorBrightGreen)
	for _, b := range g.lvl.Terrain {
		cam.fillBox(dst, b, TerrainChar, core.ColorGray)
	}
}

// renderHazards draws spines, bees and bullets.
func (g *Game) renderHazards(dst *core.Screen, cam camera) {
	for _, s := range g.course.Spines {
		cam.fillBox(dst, s.Box(), SpineChar, core.ColorBrightRed)
	}
	for _, b := range g.course.Bees {
		x, y := cam.cell(b.Pos)
		dst.SetColored(x, y, BeeChar, core.ColorBrightYellow)
	}
	for _, b := range g.course.Bullets() {
		x, y := cam.cell(b.Pos)
		dst.SetColored(x, y, BulletChar, core.ColorWhite)
	}
}

// renderBubbles draws floating bubbles first so attached ones stay on top.
func (g *Game) renderBubbles(dst *core.Screen, cam camera) {
	live := g.field.Live()
	for _, b := range live {
		if !b.Attached() {
			g.drawBubble(dst, cam, b)
		}
	}
	for _, b := range live {
		if b.Attached() {
			g.drawBubble(dst, cam, b)
		}
	}
}

func (g *Game) drawBubble(dst *core.Screen, cam camera, b *bubble.Bubble) {
	if g.field.Shielding(b) {
		g.drawShield(dst, cam, b.Pos, b.Radius(), b.Type.Color())
		return
	}
	x, y := cam.cell(b.Pos)
	glyph := b.Type.Glyph(b.Mode)
	if b.IsDead() {
		glyph = PopChar
	}
	dst.SetColored(x, y, glyph, b.Type.Color())
}

// drawShield outlines the yellow shield around the drone.
func (g *Game) drawShield(dst *core.Screen, cam camera, at core.Vec2, r float64, color core.Color) {
	const points = 24
	for i := range points {
		a := 2 * math.Pi * float64(i) / points
		x, y := cam.cell(at.Add(core.V(math.Cos(a)*r, math.Sin(a)*r)))
		if y >= hudRows {
			dst.SetColored(x, y, ShieldChar, color)
		}
	}
}

// renderDrone draws the player.
func (g *Game) renderDrone(dst *core.Screen, cam camera) {
	x, y := cam.cell(g.drone.Position())
	switch {
	case g.drone.IsDead():
		dst.SetColored(x, y, WreckChar, core.ColorRed)
	case g.drone.Boosted():
		dst.SetColored(x, y, DroneChar, core.ColorBrightYellow)
	default:
		dst.SetColored(x, y, DroneChar, core.ColorBrightWhite)
	}
}

// renderHUD draws score, level, bubble count and active effects.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)

	// Score on left
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))

	// Level in center
	levelText := fmt.Sprintf("Level %d/%d: %s", g.index+1, len(g.levels), g.lvl.Name)
	dst.DrawTextCentered(0, levelText)

	// Bubbles and effects on right
	status := fmt.Sprintf("Bubbles: %d", len(g.field.Attached()))
	if g.drone.Boosted() {
		status += " BOOST"
	}
	if g.drone.Invincible() {
		status += " SHIELD"
	}
	dst.DrawText(dst.Width()-len([]rune(status))-1, 0, status)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case StateGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.score)
		g.drawCenteredBox(dst, "DRONE LOST", subtitle)

	case StateWin:
		subtitle := fmt.Sprintf("Final Score: %d  |  Press R to restart", g.score)
		g.drawCenteredBox(dst, "ALL LEVELS CLEAR!", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightWhite)

	dst.DrawTextCenteredColored(boxY+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(boxY+3, subtitle)
}
