package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"grid-snake/game"
	"grid-snake/game/manager"
	"grid-snake/game/types"
)

const (
	maxScores     = 200 // Maximum number of scores to show in graph
	borderPadding = 10  // Padding around game area
	buttonSize    = 48
	buttonGap     = 6
)

var (
	snakeColor = rl.Color{R: 60, G: 200, B: 90, A: 255}
	boardColor = rl.Color{R: 30, G: 30, B: 30, A: 255}
)

type Renderer struct {
	maxCell         int32
	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	statsPanel      int32
	gameWidth       int32
	graphHeight     int32
	graphWidth      int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32
	buttons         []Button
}

func NewRenderer(cellSize int32) *Renderer {
	r := &Renderer{maxCell: cellSize}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	r.statsPanel = r.screenWidth / 4
	r.gameWidth = r.screenWidth - r.statsPanel
	r.graphWidth = r.statsPanel - 20
	r.graphHeight = r.screenHeight / 5
}

// layout sizes the board for grid and places the on-screen controls.
func (r *Renderer) layout(grid types.Grid) {
	availableWidth := r.gameWidth - borderPadding*2
	availableHeight := r.screenHeight - borderPadding*3 - (buttonSize*2 + buttonGap)

	cell := min(availableWidth/int32(grid.Width), availableHeight/int32(grid.Height))
	if r.maxCell > 0 {
		cell = min(cell, r.maxCell)
	}
	cell = max(cell, 4)

	r.totalGridWidth = cell * int32(grid.Width)
	r.totalGridHeight = cell * int32(grid.Height)
	r.offsetX = (r.gameWidth - r.totalGridWidth) / 2
	r.offsetY = borderPadding
	r.buttons = controlButtons(r.offsetX+r.totalGridWidth/2, r.offsetY+r.totalGridHeight+borderPadding)
	r.cellSize = cell
}

// Buttons returns the on-screen controls from the last layout.
func (r *Renderer) Buttons() []Button {
	return r.buttons
}

func (r *Renderer) cellRect(p types.Point) (int32, int32) {
	return r.offsetX + int32(p.X-1)*r.cellSize, r.offsetY + int32(p.Y-1)*r.cellSize
}

func (r *Renderer) Draw(snap game.Snapshot, stats manager.Summary) {
	r.UpdateDimensions()
	r.layout(snap.Grid)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	fontSize := min(r.screenHeight/30, r.statsPanel/12)
	lineHeight := fontSize + 6

	vis := snap.Visibility()
	if vis.ShowBoard {
		r.drawBoard(snap)
	}
	if vis.ShowInstructions {
		r.drawInstructions(snap, fontSize)
	}
	r.drawButtons(fontSize)
	r.drawStatsPanel(snap, stats, fontSize, lineHeight)

	rl.EndDrawing()
}

func (r *Renderer) drawBoard(snap game.Snapshot) {
	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.totalGridWidth+2, r.totalGridHeight+2, rl.DarkGray)
	rl.DrawRectangle(r.offsetX, r.offsetY, r.totalGridWidth, r.totalGridHeight, boardColor)

	for x := 1; x <= snap.Grid.Width; x++ {
		for y := 1; y <= snap.Grid.Height; y++ {
			cx, cy := r.cellRect(types.Point{X: x, Y: y})
			rl.DrawRectangleLines(cx, cy, r.cellSize, r.cellSize, rl.Color{R: 45, G: 45, B: 45, A: 255})
		}
	}

	fx, fy := r.cellRect(snap.Food)
	rl.DrawRectangle(fx, fy, r.cellSize, r.cellSize, rl.Red)

	for j := len(snap.Snake) - 1; j >= 0; j-- {
		p := snap.Snake[j]
		px, py := r.cellRect(p)
		color := snakeColor
		if j == 0 {
			color = rl.Color{
				R: uint8(min(float32(snakeColor.R)*1.3, 255)),
				G: uint8(min(float32(snakeColor.G)*1.3, 255)),
				B: uint8(min(float32(snakeColor.B)*1.3, 255)),
				A: 255,
			}
		}
		rl.DrawRectangle(px, py, r.cellSize, r.cellSize, color)
		if j == 0 {
			r.drawHeading(px, py, snap.Heading)
		}
	}
}

// drawHeading marks the head with a triangle pointing the way it moves.
func (r *Renderer) drawHeading(headX, headY int32, heading types.Direction) {
	halfCell := r.cellSize / 2
	switch heading {
	case types.Right:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Yellow)
	case types.Left:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Yellow)
	case types.Down:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Yellow)
	case types.Up:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Yellow)
	}
}

func (r *Renderer) drawInstructions(snap game.Snapshot, fontSize int32) {
	centerX := r.offsetX + r.totalGridWidth/2
	y := r.offsetY + r.totalGridHeight/4

	logoSize := fontSize * 3
	logo := "SNAKE"
	rl.DrawText(logo, centerX-rl.MeasureText(logo, logoSize)/2, y, logoSize, snakeColor)
	y += logoSize + fontSize

	for _, line := range []string{
		"Press Enter, Space or START to play",
		"Steer with the arrow keys, WASD or the buttons",
		fmt.Sprintf("High score: %d", snap.HighScore),
	} {
		rl.DrawText(line, centerX-rl.MeasureText(line, fontSize)/2, y, fontSize, rl.LightGray)
		y += fontSize + 8
	}
}

func (r *Renderer) drawButtons(fontSize int32) {
	mouse := rl.GetMousePosition()
	for _, b := range r.buttons {
		color := rl.DarkGray
		if b.Contains(mouse.X, mouse.Y) {
			color = rl.Gray
		}
		rl.DrawRectangle(b.X, b.Y, b.W, b.H, color)
		rl.DrawRectangleLines(b.X, b.Y, b.W, b.H, rl.LightGray)

		size := fontSize
		if b.Label == "START" {
			size = fontSize * 3 / 4
		}
		tw := rl.MeasureText(b.Label, size)
		rl.DrawText(b.Label, b.X+(b.W-tw)/2, b.Y+(b.H-size)/2, size, rl.White)
	}
}

func (r *Renderer) drawStatsPanel(snap game.Snapshot, stats manager.Summary, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 5
	statsY := int32(borderPadding)

	rl.DrawRectangle(statsX-5, 0, r.statsPanel+5, r.screenHeight, rl.DarkGray)

	lines := []struct {
		text  string
		color rl.Color
	}{
		{fmt.Sprintf("Score: %d", snap.Score), rl.White},
		{fmt.Sprintf("High score: %d", snap.HighScore), rl.Gold},
		{fmt.Sprintf("Speed: %dms", snap.Speed.Milliseconds()), rl.White},
		{"", rl.White},
		{fmt.Sprintf("Games: %d", stats.GamesPlayed), rl.White},
		{fmt.Sprintf("Avg score: %.1f", stats.AverageScore), rl.Green},
		{fmt.Sprintf("Avg duration: %.1fs", stats.AverageDuration.Round(100*time.Millisecond).Seconds()), rl.Purple},
	}
	for _, line := range lines {
		rl.DrawText(line.text, statsX, statsY, fontSize, line.color)
		statsY += lineHeight
	}

	r.drawPerformanceGraph(statsX, stats, fontSize)
}

func (r *Renderer) drawPerformanceGraph(graphX int32, stats manager.Summary, fontSize int32) {
	graphHeight := r.graphHeight
	graphY := r.screenHeight - graphHeight - fontSize*2

	rl.DrawRectangleLines(graphX, graphY, r.graphWidth, graphHeight, rl.White)
	rl.DrawText("Scores", graphX, graphY-fontSize-5, fontSize, rl.White)

	scores := stats.RecentScores
	if len(scores) < 2 {
		return
	}

	maxScore := 1
	for _, score := range scores {
		if score > maxScore {
			maxScore = score
		}
	}

	for j := 1; j < len(scores); j++ {
		x1 := graphX + int32(float32(r.graphWidth)*float32(j-1)/float32(maxScores))
		y1 := graphY + graphHeight - int32(float32(graphHeight)*float32(scores[j-1])/float32(maxScore))
		x2 := graphX + int32(float32(r.graphWidth)*float32(j)/float32(maxScores))
		y2 := graphY + graphHeight - int32(float32(graphHeight)*float32(scores[j])/float32(maxScore))
		rl.DrawLine(x1, y1, x2, y2, snakeColor)
	}

	// dashed average line
	avgY := graphY + graphHeight - int32(float32(graphHeight)*float32(stats.AverageScore)/float32(maxScore))
	for x := graphX; x < graphX+r.graphWidth; x += 5 {
		rl.DrawLine(x, avgY, x+2, avgY, rl.Green)
	}
}
