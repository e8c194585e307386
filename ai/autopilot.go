package ai

import (
	"github.com/sirupsen/logrus"

	"grid-snake/game"
	"grid-snake/game/manager"
	"grid-snake/game/types"
)

// Rewards for one step
const (
	rewardFood   = 1.0
	rewardDeath  = -1.0
	rewardCloser = 0.1
	rewardAway   = -0.15
)

// Driver is the input contract the autopilot steers through.
type Driver interface {
	RequestTurn(types.Direction)
	RequestStart()
}

// Autopilot plays the game by observing session events and sending turn
// requests, learning as it goes. It restarts the session after each crash.
type Autopilot struct {
	agent      *QLearning
	driver     Driver
	collisions *manager.CollisionManager
	log        logrus.FieldLogger

	lastState  State
	lastAction Action
	lastDist   int
	hasLast    bool
}

func NewAutopilot(driver Driver, grid types.Grid, agent *QLearning, log logrus.FieldLogger) *Autopilot {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Autopilot{
		agent:      agent,
		driver:     driver,
		collisions: manager.NewCollisionManager(grid),
		log:        log.WithField("component", "autopilot"),
	}
}

// OnEvent implements game.Observer.
func (a *Autopilot) OnEvent(ev game.Event) {
	switch ev.Kind {
	case game.EventGameOver:
		if a.hasLast {
			a.agent.Update(a.lastState, a.lastAction, rewardDeath, State{}, true)
		}
		a.hasLast = false
		a.agent.GamesPlayed++
		a.log.WithFields(logrus.Fields{
			"games":  a.agent.GamesPlayed,
			"score":  ev.Score,
			"states": len(a.agent.QTable),
		}).Debug("autopilot restarting")
		a.driver.RequestStart()
	case game.EventStarted, game.EventMoved, game.EventAte:
		a.step(ev)
	}
}

func (a *Autopilot) step(ev game.Event) {
	snap := ev.Snapshot
	state := a.observe(snap)
	dist := manhattan(snap.Head(), snap.Food)

	if a.hasLast {
		reward := rewardAway
		switch {
		case ev.Kind == game.EventAte:
			reward = rewardFood
		case dist < a.lastDist:
			reward = rewardCloser
		}
		a.agent.Update(a.lastState, a.lastAction, reward, state, false)
	}

	action := a.agent.GetAction(state)
	a.driver.RequestTurn(action)

	a.lastState = state
	a.lastAction = action
	a.lastDist = dist
	a.hasLast = true
}

func (a *Autopilot) observe(snap game.Snapshot) State {
	head := snap.Head()
	var dangers [4]bool
	for i, d := range types.Directions {
		dangers[i] = a.collisions.IsDanger(snap.Snake, head.Add(d.ToPoint()))
	}
	return NewState(head, snap.Food, dangers, snap.Heading)
}

func manhattan(p, q types.Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
