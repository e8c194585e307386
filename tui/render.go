package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"grid-snake/game"
	"grid-snake/game/types"
)

// cellWidth is the number of terminal columns per grid cell; terminal cells
// are roughly twice as tall as they are wide.
const cellWidth = 2

var (
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHead   = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleBody   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFood   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleLogo   = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
)

var instructions = []string{
	"Press Enter or Space to start",
	"Arrow keys or WASD to steer",
	"Esc to quit",
}

// CellOrigin returns the screen column and row of the left half of grid cell
// p, with the board's border at column 0, row 0.
func CellOrigin(p types.Point) (int, int) {
	return 1 + (p.X-1)*cellWidth, p.Y
}

// Draw paints snap onto screen. Idle shows the logo and instructions, Running
// shows the board. The status line is always drawn.
func Draw(screen tcell.Screen, snap game.Snapshot) {
	screen.Clear()

	vis := snap.Visibility()
	if vis.ShowBoard {
		drawBoard(screen, snap)
	}
	if vis.ShowInstructions {
		drawInstructions(screen)
	}
	drawText(screen, 0, snap.Grid.Height+2, styleText,
		fmt.Sprintf("Score: %d  High: %d", snap.Score, snap.HighScore))

	screen.Show()
}

func drawBoard(screen tcell.Screen, snap game.Snapshot) {
	right := snap.Grid.Width*cellWidth + 1
	bottom := snap.Grid.Height + 1

	for x := 1; x < right; x++ {
		screen.SetContent(x, 0, tcell.RuneHLine, nil, styleBorder)
		screen.SetContent(x, bottom, tcell.RuneHLine, nil, styleBorder)
	}
	for y := 1; y < bottom; y++ {
		screen.SetContent(0, y, tcell.RuneVLine, nil, styleBorder)
		screen.SetContent(right, y, tcell.RuneVLine, nil, styleBorder)
	}
	screen.SetContent(0, 0, tcell.RuneULCorner, nil, styleBorder)
	screen.SetContent(right, 0, tcell.RuneURCorner, nil, styleBorder)
	screen.SetContent(0, bottom, tcell.RuneLLCorner, nil, styleBorder)
	screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, styleBorder)

	drawCell(screen, snap.Food, '●', styleFood)
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			drawCell(screen, snap.Snake[i], '█', styleHead)
		} else {
			drawCell(screen, snap.Snake[i], '▓', styleBody)
		}
	}
}

func drawCell(screen tcell.Screen, p types.Point, r rune, style tcell.Style) {
	x, y := CellOrigin(p)
	for dx := 0; dx < cellWidth; dx++ {
		screen.SetContent(x+dx, y, r, nil, style)
	}
}

func drawInstructions(screen tcell.Screen) {
	drawText(screen, 2, 1, styleLogo, "S N A K E")
	for i, line := range instructions {
		drawText(screen, 2, 3+i, styleText, line)
	}
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
