// Package tui is the terminal client.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"grid-snake/game"
	"grid-snake/game/types"
)

// frameInterval is how often the loop polls the tick schedule and redraws.
const frameInterval = 10 * time.Millisecond

type App struct {
	screen  tcell.Screen
	session *game.Session
	log     logrus.FieldLogger
}

func NewApp(screen tcell.Screen, session *game.Session, log logrus.FieldLogger) *App {
	return &App{screen: screen, session: session, log: log}
}

// Run opens the terminal and plays until the user quits or ctx ends.
func Run(ctx context.Context, session *game.Session, log logrus.FieldLogger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	return NewApp(screen, session, log).Loop(ctx)
}

// Loop reads keys on a separate goroutine and drives the session from this
// one. It returns when a quit key is pressed or ctx is cancelled.
func (a *App) Loop(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	frames := time.NewTicker(frameInterval)
	defer frames.Stop()

	Draw(a.screen, a.session.Snapshot())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if a.HandleKey(ev) {
					a.log.Info("quit requested")
					return nil
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
		case <-frames.C:
			if res := a.session.Pump(); res.Moved || res.Crashed {
				Draw(a.screen, a.session.Snapshot())
			}
		}
	}
}

// HandleKey forwards a key press to the session and reports whether the user
// asked to quit.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		a.session.RequestTurn(types.Up)
	case tcell.KeyDown:
		a.session.RequestTurn(types.Down)
	case tcell.KeyLeft:
		a.session.RequestTurn(types.Left)
	case tcell.KeyRight:
		a.session.RequestTurn(types.Right)
	case tcell.KeyEnter:
		a.start()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			a.session.RequestTurn(types.Up)
		case 's', 'S':
			a.session.RequestTurn(types.Down)
		case 'a', 'A':
			a.session.RequestTurn(types.Left)
		case 'd', 'D':
			a.session.RequestTurn(types.Right)
		case ' ':
			a.start()
		case 'q', 'Q':
			return true
		}
	}
	return false
}

func (a *App) start() {
	a.session.RequestStart()
	Draw(a.screen, a.session.Snapshot())
}
