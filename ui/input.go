package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"grid-snake/game/types"
)

// Button is an on-screen control. A Button with no Direction is the
// start/restart control.
type Button struct {
	Label     string
	Direction types.Direction
	X, Y      int32
	W, H      int32
}

func (b Button) Contains(x, y float32) bool {
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, rl.Rectangle{
		X:      float32(b.X),
		Y:      float32(b.Y),
		Width:  float32(b.W),
		Height: float32(b.H),
	})
}

// controlButtons lays out a d-pad centred on centerX below top, with the
// start button to its right.
func controlButtons(centerX, top int32) []Button {
	step := int32(buttonSize + buttonGap)
	left := centerX - buttonSize/2
	return []Button{
		{Label: "^", Direction: types.Up, X: left, Y: top, W: buttonSize, H: buttonSize},
		{Label: "<", Direction: types.Left, X: left - step, Y: top + step, W: buttonSize, H: buttonSize},
		{Label: "v", Direction: types.Down, X: left, Y: top + step, W: buttonSize, H: buttonSize},
		{Label: ">", Direction: types.Right, X: left + step, Y: top + step, W: buttonSize, H: buttonSize},
		{Label: "START", X: left + 3*step, Y: top + step, W: buttonSize * 2, H: buttonSize},
	}
}

var keyDirections = []struct {
	key       int32
	direction types.Direction
}{
	{rl.KeyUp, types.Up},
	{rl.KeyW, types.Up},
	{rl.KeyDown, types.Down},
	{rl.KeyS, types.Down},
	{rl.KeyLeft, types.Left},
	{rl.KeyA, types.Left},
	{rl.KeyRight, types.Right},
	{rl.KeyD, types.Right},
}

// Controls is what the GUI drives.
type Controls interface {
	RequestTurn(types.Direction)
	RequestStart()
}

// handleInput forwards this frame's keys and clicks to c.
func handleInput(c Controls, buttons []Button) {
	for _, k := range keyDirections {
		if rl.IsKeyPressed(k.key) {
			c.RequestTurn(k.direction)
		}
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		c.RequestStart()
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()
	for _, b := range buttons {
		if !b.Contains(mouse.X, mouse.Y) {
			continue
		}
		if b.Direction == types.None {
			c.RequestStart()
		} else {
			c.RequestTurn(b.Direction)
		}
	}
}
