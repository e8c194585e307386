package manager

import (
	"time"

	"grid-snake/game/clock"
)

// Speed curve. The interval only shrinks within a run.
const (
	InitialSpeed = 300 * time.Millisecond
	SpeedStep    = 5 * time.Millisecond
	MinSpeed     = 50 * time.Millisecond
)

// SpeedController owns the tick interval and the schedule that fires at it.
type SpeedController struct {
	speed  time.Duration
	ticker *clock.Ticker
}

func NewSpeedController(ticker *clock.Ticker) *SpeedController {
	return &SpeedController{
		speed:  InitialSpeed,
		ticker: ticker,
	}
}

func (sc *SpeedController) Speed() time.Duration {
	return sc.speed
}

// Start schedules recurring ticks at the current speed.
func (sc *SpeedController) Start() {
	sc.ticker.Start(sc.speed)
}

// Stop cancels the schedule.
func (sc *SpeedController) Stop() {
	sc.ticker.Stop()
}

// Due reports whether a tick should run now.
func (sc *SpeedController) Due() bool {
	return sc.ticker.Due()
}

// OnFoodEaten speeds the game up by one step, never below MinSpeed, and
// reschedules so the next tick is a full new interval away.
func (sc *SpeedController) OnFoodEaten() time.Duration {
	sc.speed -= SpeedStep
	if sc.speed < MinSpeed {
		sc.speed = MinSpeed
	}
	sc.ticker.SetInterval(sc.speed)
	return sc.speed
}

// Reset cancels the schedule and restores the initial speed.
func (sc *SpeedController) Reset() {
	sc.ticker.Stop()
	sc.speed = InitialSpeed
}
