package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"

	"grid-snake/game"
)

const (
	windowWidth  = 1024
	windowHeight = 640
)

// Run opens the window and plays session until the window is closed or Q
// is pressed.
func Run(session *game.Session, cellSize int32, log logrus.FieldLogger) {
	rl.InitWindow(windowWidth, windowHeight, "Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	renderer := NewRenderer(cellSize)
	log.WithField("cell", cellSize).Info("gui started")

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}
		handleInput(session, renderer.Buttons())
		session.Pump()
		renderer.Draw(session.Snapshot(), session.Stats())
	}

	log.Info("gui closed")
}
