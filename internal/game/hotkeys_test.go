package game

import (
	"testing"

	"planegame/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func press(keys ...int32) *engine.Input {
	in := engine.NewInput()
	in.BeginFrame()
	for _, k := range keys {
		in.SetKey(k, true)
	}
	return in
}

func TestCommandFor(t *testing.T) {
	tests := []struct {
		name string
		keys []int32
		want Command
	}{
		{"nothing", nil, CmdNone},
		{"plain S", []int32{rl.KeyS}, CmdNone},
		{"stats", []int32{rl.KeyF1}, CmdToggleStats},
		{"cursor", []int32{rl.KeyLeftControl, rl.KeyC}, CmdToggleCursor},
		{"save", []int32{rl.KeyLeftControl, rl.KeyLeftShift, rl.KeyS}, CmdSaveScene},
		{"save right mods", []int32{rl.KeyRightControl, rl.KeyRightShift, rl.KeyS}, CmdSaveScene},
		{"load", []int32{rl.KeyLeftControl, rl.KeyLeftShift, rl.KeyL}, CmdLoadScene},
		{"reload", []int32{rl.KeyLeftControl, rl.KeyLeftShift, rl.KeyR}, CmdReloadScripts},
		{"ctrl S without shift", []int32{rl.KeyLeftControl, rl.KeyS}, CmdNone},
		{"shift S without ctrl", []int32{rl.KeyLeftShift, rl.KeyS}, CmdNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := commandFor(press(tt.keys...)); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCommandNeedsFreshPress(t *testing.T) {
	in := press(rl.KeyLeftControl, rl.KeyLeftShift, rl.KeyS)
	if commandFor(in) != CmdSaveScene {
		t.Fatal("Expected save on first frame")
	}
	in.BeginFrame()
	in.SetKey(rl.KeyLeftControl, true)
	in.SetKey(rl.KeyLeftShift, true)
	in.SetKey(rl.KeyS, true)
	if got := commandFor(in); got != CmdNone {
		t.Errorf("Held keys should not repeat the command, got %v", got)
	}
}

func TestCommandString(t *testing.T) {
	if CmdReloadScripts.String() != "reload scripts" {
		t.Errorf("Unexpected name %q", CmdReloadScripts.String())
	}
	if Command(99).String() != "none" {
		t.Errorf("Unknown command should print none, got %q", Command(99).String())
	}
}
