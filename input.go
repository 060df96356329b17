package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/cuberoll/game"
	"github.com/milk9111/cuberoll/world"
)

// Input samples the keyboard and first gamepad once per frame.
type Input struct {
	// Intent is the set of held move directions.
	Intent game.Intent
	// RestartPressed is true on the frame R was pressed.
	RestartPressed bool
	// NextPressed is true on the frame Enter or N was pressed.
	NextPressed bool
	// PrevPressed is true on the frame P was pressed.
	PrevPressed bool
	// GhostPressed toggles the best-run ghost.
	GhostPressed bool
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}

	var dirs []world.Coord
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		dirs = append(dirs, world.Forward)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		dirs = append(dirs, world.Back)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		dirs = append(dirs, world.Left)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		dirs = append(dirs, world.Right)
	}

	var gpRestart bool
	ids := ebiten.GamepadIDs()
	if len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		leftY := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if leftY < -0.5 || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftTop) {
			dirs = append(dirs, world.Forward)
		}
		if leftY > 0.5 || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftBottom) {
			dirs = append(dirs, world.Back)
		}
		if leftX < -0.5 || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
			dirs = append(dirs, world.Left)
		}
		if leftX > 0.5 || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
			dirs = append(dirs, world.Right)
		}
		gpRestart = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	}

	i.Intent = game.IntentOf(dirs...)
	i.RestartPressed = inpututil.IsKeyJustPressed(ebiten.KeyR) || gpRestart
	i.NextPressed = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyN)
	i.PrevPressed = inpututil.IsKeyJustPressed(ebiten.KeyP)
	i.GhostPressed = inpututil.IsKeyJustPressed(ebiten.KeyG)
}
