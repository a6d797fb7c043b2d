package blocks

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

const (
	cellWidth  = 2  // Characters per board cell
	panelWidth = 14 // Hold/HUD column on the left, preview column on the right
	miniHeight = 3  // Rows per piece in the preview column
)

var catalog = core.DefaultCatalog()

// pieceColor returns the color of a piece type.
func pieceColor(typ int) platformcore.Color {
	switch typ {
	case core.PieceI:
		return platformcore.ColorCyan
	case core.PieceJ:
		return platformcore.ColorBlue
	case core.PieceL:
		return platformcore.ColorOrange
	case core.PieceO:
		return platformcore.ColorYellow
	case core.PieceS:
		return platformcore.ColorGreen
	case core.PieceT:
		return platformcore.ColorPurple
	case core.PieceZ:
		return platformcore.ColorRed
	}
	return platformcore.ColorWhite
}

// layout holds the screen positions of one frame.
type layout struct {
	leftX  int
	wellX  int
	rightX int
	top    int
	hidden int // Spawn-zone rows drawn above the frame
}

// rowY maps a board row to a screen row. The frame's top edge sits between
// the spawn zone and the visible rows.
func (l layout) rowY(y int) int {
	if y < l.hidden {
		return l.top + y
	}
	return l.top + y + 1
}

func (l layout) cellX(x int) int {
	return l.wellX + 1 + x*cellWidth
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.engine == nil {
		g.renderSetupError(dst)
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.engine.Snapshot()
	wellW := snap.Width*cellWidth + 2
	l := layout{
		leftX:  (g.screenW - wellW - 2*panelWidth) / 2,
		top:    max((g.screenH-snap.Height-2)/2, 0),
		hidden: g.cfg.HiddenRows(),
	}
	l.wellX = l.leftX + panelWidth
	l.rightX = l.wellX + wellW + 2

	g.renderWell(dst, l, snap)
	g.renderHold(dst, l, snap)
	g.renderHUD(dst, l, snap)
	g.renderPreview(dst, l, snap)
	g.renderOverlays(dst, l, snap)
}

// renderWell draws the frame, locked cells, the ghost and the active piece.
func (g *Game) renderWell(dst *platformcore.Screen, l layout, snap core.Snapshot) {
	well := platformcore.NewRect(l.wellX, l.top+l.hidden, snap.Width*cellWidth+2, snap.Height-l.hidden+2)
	dst.DrawBox(well, platformcore.ColorWhite)

	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			c, _ := snap.Cell(x, y)
			switch {
			case c.Filled:
				drawBlock(dst, l.cellX(x), l.rowY(y), pieceColor(c.Type))
			case y >= l.hidden:
				dst.SetColored(l.cellX(x)+1, l.rowY(y), '.', platformcore.ColorDim)
			}
		}
	}

	if !snap.HasActive {
		return
	}
	if snap.Drop > 0 {
		for _, p := range snap.Footprint {
			drawBlock(dst, l.cellX(p.X), l.rowY(p.Y+snap.Drop), platformcore.ColorGray)
		}
	}
	color := pieceColor(snap.Active.Type)
	for _, p := range snap.Footprint {
		drawBlock(dst, l.cellX(p.X), l.rowY(p.Y), color)
	}
}

func drawBlock(dst *platformcore.Screen, x, y int, c platformcore.Color) {
	dst.SetColored(x, y, '[', c)
	dst.SetColored(x+1, y, ']', c)
}

// drawMini draws a piece in its spawn orientation with its top row at y.
func drawMini(dst *platformcore.Screen, x, y, typ int, c platformcore.Color) {
	if typ < 0 || typ >= len(catalog) {
		return
	}
	cells := catalog[typ].Cells(0)
	minY := cells[0].Y
	for _, p := range cells {
		minY = min(minY, p.Y)
	}
	for _, p := range cells {
		drawBlock(dst, x+p.X*cellWidth, y+p.Y-minY, c)
	}
}

// renderHold draws the hold box. A held piece that cannot be swapped back
// until the next spawn is grayed out.
func (g *Game) renderHold(dst *platformcore.Screen, l layout, snap core.Snapshot) {
	dst.DrawText(l.leftX+1, l.top, "HOLD")
	if !snap.HasHeld {
		return
	}
	c := pieceColor(snap.Held)
	if snap.HoldUsed {
		c = platformcore.ColorGray
	}
	drawMini(dst, l.leftX+2, l.top+2, snap.Held, c)
}

// renderHUD draws the session facts under the hold box.
func (g *Game) renderHUD(dst *platformcore.Screen, l layout, snap core.Snapshot) {
	x := l.leftX + 1
	y := l.top + 6

	dst.DrawTextColored(x, y, g.Title(), platformcore.ColorCyan)
	lines := []string{
		fmt.Sprintf("Frame  %d", snap.Tick),
		fmt.Sprintf("Pieces %d", snap.Stats.Locked),
		fmt.Sprintf("Rows   %d", snap.Stats.RowsCleared),
		fmt.Sprintf("Holds  %d", snap.Stats.Holds),
	}
	for i, line := range lines {
		dst.DrawText(x, y+2+i, line)
	}
	y += 2 + len(lines) + 1

	if g.allClears > 0 {
		dst.DrawTextColored(x, y, fmt.Sprintf("All clear x%d", g.allClears), platformcore.ColorYellow)
		y++
	}
	if snap.HasActive && snap.LandedFrames > 0 {
		dst.DrawTextColored(x, y, fmt.Sprintf("Lock %d/%d", snap.LandedFrames, g.cfg.Timing.LockDelay), platformcore.ColorDim)
	}
}

// renderPreview draws the upcoming pieces, next one first.
func (g *Game) renderPreview(dst *platformcore.Screen, l layout, snap core.Snapshot) {
	if len(snap.Preview) == 0 {
		return
	}
	dst.DrawText(l.rightX, l.top, "NEXT")
	for i, typ := range snap.Preview {
		drawMini(dst, l.rightX+1, l.top+2+i*miniHeight, typ, pieceColor(typ))
	}
}

// renderOverlays draws the pause and game-over boxes over the well.
func (g *Game) renderOverlays(dst *platformcore.Screen, l layout, snap core.Snapshot) {
	centerX := l.wellX + (snap.Width*cellWidth+2)/2
	centerY := l.rowY(snap.Height / 2)

	if g.paused {
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}
	if reason, ok := core.ReasonOf(g.engine.Ended()); ok {
		drawOverlay(dst, centerX, centerY,
			"GAME OVER",
			reason.String(),
			fmt.Sprintf("%d rows, %d pieces", snap.Stats.RowsCleared, snap.Stats.Locked),
			"R restart  Q quit",
		)
	}
}

// drawOverlay draws a centered, boxed block of text, kept on screen.
func drawOverlay(dst *platformcore.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	w, h := maxLen+4, len(lines)+2
	box := platformcore.NewRect(
		platformcore.Clamp(centerX-w/2, 0, max(dst.Width()-w, 0)),
		platformcore.Clamp(centerY-h/2, 0, max(dst.Height()-h, 0)),
		w, h,
	)

	dst.DrawRect(box, platformcore.Cell{Rune: ' '})
	dst.DrawBox(box, platformcore.ColorWhite)
	text := box.Inset(1)
	mid := text.X + text.W/2
	for i, line := range lines {
		dst.DrawText(mid-len(line)/2, text.Y+i, line)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", 2*g.cfg.Board.Width+2+2*panelWidth, g.cfg.Board.Height+2))
}

func (g *Game) renderSetupError(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Cannot start session")
	if g.setupErr != nil {
		dst.DrawTextCentered(y+1, g.setupErr.Error())
	}
}
