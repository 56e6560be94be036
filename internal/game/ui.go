package game

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorPanel     = rl.NewColor(18, 18, 24, 200)
	colorElement   = rl.NewColor(35, 35, 48, 255)
	colorHover     = rl.NewColor(50, 50, 68, 255)
	colorAccent    = rl.NewColor(108, 99, 255, 255)
	colorText      = rl.NewColor(235, 235, 245, 255)
	colorTextMuted = rl.NewColor(150, 150, 170, 255)
)

const (
	panelWidth  = 220
	panelMargin = 10
	rowHeight   = 24
)

// initStyle sets the dark theme used by the overlay panel.
func initStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorPanel))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextMuted))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorText))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// DrawUI draws the stats panel and the transient status line. The panel's
// buttons only respond while the cursor is free (Ctrl+C).
func (g *Game) DrawUI() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	rl.DrawFPS(screenW-90, screenH-25)
	if g.status != "" && time.Now().Before(g.statusUntil) {
		rl.DrawText(g.status, panelMargin, screenH-30, 18, colorText)
	}
	if !g.ShowStats {
		return
	}

	x := float32(screenW - panelWidth - panelMargin)
	y := float32(panelMargin)
	row := func() rl.Rectangle {
		r := rl.Rectangle{X: x + 8, Y: y, Width: panelWidth - 16, Height: rowHeight - 4}
		y += rowHeight
		return r
	}

	rl.DrawRectangle(int32(x), int32(y), panelWidth, 12*rowHeight, colorPanel)
	y += 6

	comps := g.World.Scene.Components()
	lines := []string{
		fmt.Sprintf("Objects:   %d (%d destroyed)", g.World.Scene.ObjectCount(), g.destroyed),
		fmt.Sprintf("Scripts:   %d (+%d)", len(g.World.Scene.ActiveScripts()), len(g.World.Scene.PendingScripts())),
		fmt.Sprintf("Renderers: %d, culled %d", len(comps.MeshRenderers), g.Renderer.Culled),
		fmt.Sprintf("Lights:    %d", len(comps.Lights)),
		fmt.Sprintf("Update:    %.2f ms", g.updateMs),
		fmt.Sprintf("Draw:      %.2f ms", g.drawMs),
	}
	for _, line := range lines {
		r := row()
		rl.DrawText(line, int32(r.X), int32(r.Y)+2, 16, colorText)
	}

	g.TimeScale = gui.Slider(row(), "", fmt.Sprintf("%.2fx", g.TimeScale), g.TimeScale, 0, 2)

	free := !g.cursorLocked
	if gui.Button(row(), "Save scene") && free {
		g.handleCommand(CmdSaveScene)
	}
	if gui.Button(row(), "Load scene") && free {
		g.handleCommand(CmdLoadScene)
	}
	if gui.Button(row(), "Reload scripts") && free {
		g.handleCommand(CmdReloadScripts)
	}
	if gui.Button(row(), "Hide") && free {
		g.ShowStats = false
	}
}
