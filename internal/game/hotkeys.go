package game

import (
	"planegame/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Command is an action bound to a hotkey.
type Command int

const (
	CmdNone Command = iota
	CmdToggleCursor
	CmdToggleStats
	CmdSaveScene
	CmdLoadScene
	CmdReloadScripts
)

func (c Command) String() string {
	switch c {
	case CmdToggleCursor:
		return "toggle cursor"
	case CmdToggleStats:
		return "toggle stats"
	case CmdSaveScene:
		return "save scene"
	case CmdLoadScene:
		return "load scene"
	case CmdReloadScripts:
		return "reload scripts"
	}
	return "none"
}

// commandFor maps this frame's key presses to a command. Scene and script
// commands need Ctrl+Shift so they don't collide with flight controls.
func commandFor(in *engine.Input) Command {
	if in.Pressed(rl.KeyF1) {
		return CmdToggleStats
	}
	ctrl := in.Down(rl.KeyLeftControl) || in.Down(rl.KeyRightControl)
	if !ctrl {
		return CmdNone
	}
	if in.Pressed(rl.KeyC) {
		return CmdToggleCursor
	}
	shift := in.Down(rl.KeyLeftShift) || in.Down(rl.KeyRightShift)
	if !shift {
		return CmdNone
	}
	switch {
	case in.Pressed(rl.KeyS):
		return CmdSaveScene
	case in.Pressed(rl.KeyL):
		return CmdLoadScene
	case in.Pressed(rl.KeyR):
		return CmdReloadScripts
	}
	return CmdNone
}
