// Package debugdraw queues debug primitives from scripts for the renderer to
// draw at the end of the frame.
package debugdraw

import rl "github.com/gen2brain/raylib-go/raylib"

// Line is a world-space segment.
type Line struct {
	Start, End rl.Vector3
	Color      rl.Vector3
}

// ScreenLine is a segment in normalized screen coordinates: [-1, 1] on both
// axes, y up, origin at the center.
type ScreenLine struct {
	Start, End rl.Vector2
	Color      rl.Vector3
}

// Text is a string anchored at its top-left corner in normalized screen coordinates.
type Text struct {
	TopLeft rl.Vector2
	Text    string
}

// Debug collects draw commands in call order until Clear.
type Debug struct {
	lines       []Line
	screenLines []ScreenLine
	texts       []Text
}

func New() *Debug {
	return &Debug{}
}

func (d *Debug) DrawLine(start, end, color rl.Vector3) {
	d.lines = append(d.lines, Line{Start: start, End: end, Color: color})
}

func (d *Debug) DrawScreenLine(start, end rl.Vector2, color rl.Vector3) {
	d.screenLines = append(d.screenLines, ScreenLine{Start: start, End: end, Color: color})
}

func (d *Debug) DrawScreenText(topLeft rl.Vector2, text string) {
	d.texts = append(d.texts, Text{TopLeft: topLeft, Text: text})
}

func (d *Debug) Lines() []Line {
	return d.lines
}

func (d *Debug) ScreenLines() []ScreenLine {
	return d.screenLines
}

func (d *Debug) Texts() []Text {
	return d.texts
}

// Len is the number of queued commands of every kind.
func (d *Debug) Len() int {
	return len(d.lines) + len(d.screenLines) + len(d.texts)
}

// Clear empties the queues, keeping their capacity for the next frame.
func (d *Debug) Clear() {
	d.lines = d.lines[:0]
	d.screenLines = d.screenLines[:0]
	d.texts = d.texts[:0]
}

// ToPixels maps a normalized screen point to pixel coordinates.
func ToPixels(p rl.Vector2, width, height int32) rl.Vector2 {
	return rl.Vector2{
		X: (p.X + 1) * 0.5 * float32(width),
		Y: (1 - p.Y) * 0.5 * float32(height),
	}
}
