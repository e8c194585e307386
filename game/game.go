package game

import (
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	"grid-snake/game/clock"
	"grid-snake/game/entity"
	"grid-snake/game/manager"
	"grid-snake/game/types"
)

// Spawn is where every run starts, facing DefaultHeading.
var Spawn = types.Point{X: 8, Y: 5}

const DefaultHeading = types.Right

// State is the session lifecycle. Game over is a transition back to Idle.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// StepResult describes the outcome of one call to Tick.
type StepResult struct {
	Moved   bool
	Ate     bool
	Crashed bool
	Cause   manager.CollisionType
	Score   int
}

// Session owns the whole game: snake, food, heading, speed and score. All
// methods are safe for concurrent use; observers are notified after the
// lock is released.
type Session struct {
	mu sync.Mutex

	id    string
	runID string
	grid  types.Grid
	state State

	snake *entity.Snake
	food  types.Point
	steer *Steering
	speed *manager.SpeedController

	foodMgr      *manager.FoodManager
	collisionMgr *manager.CollisionManager
	stateMgr     *manager.StateManager

	clock     clock.Clock
	rng       *rand.Rand
	ticks     int
	startedAt time.Time

	log       logrus.FieldLogger
	observers []Observer
}

type Option func(*Session)

// WithSeed seeds the food placement RNG.
func WithSeed(seed uint64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func WithClock(c clock.Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) {
		s.log = log
	}
}

func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.observers = append(s.observers, o)
	}
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		id:       uuid.New().String(),
		grid:     types.DefaultGrid(),
		state:    Idle,
		clock:    clock.Real{},
		snake:    entity.NewSnake(Spawn),
		steer:    NewSteering(DefaultHeading),
		stateMgr: manager.NewStateManager(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if s.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		s.log = discard
	}
	s.log = s.log.WithField("session", s.id)

	s.collisionMgr = manager.NewCollisionManager(s.grid)
	s.foodMgr = manager.NewFoodManager(s.grid, s.rng)
	s.speed = manager.NewSpeedController(clock.NewTicker(s.clock))
	s.placeFood()
	return s
}

// AddObserver registers o for future events.
func (s *Session) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Grid() types.Grid {
	return s.grid
}

// Start leaves Idle and schedules ticks at the current speed. Calling it
// while a run is in progress does nothing.
func (s *Session) Start() {
	s.mu.Lock()
	if s.state == Running {
		s.mu.Unlock()
		s.log.Debug("start ignored: already running")
		return
	}
	s.state = Running
	s.runID = uuid.NewString()
	s.startedAt = s.clock.Now()
	s.ticks = 0
	s.speed.Start()
	runID := s.runID
	ev := Event{Kind: EventStarted, Snapshot: s.snapshotLocked()}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"run":   runID,
		"speed": ev.Snapshot.Speed,
	}).Info("run started")
	s.notify(ev)
}

// RequestStart is the input-layer entry point for the start/restart control.
func (s *Session) RequestStart() {
	s.Start()
}

// RequestTurn queues a heading change for the next tick. Reversals of the
// current heading are dropped.
func (s *Session) RequestTurn(d types.Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steer.Request(d)
}

// RequestTurnToken is RequestTurn for "up", "down", "left" and "right".
// Anything else is ignored.
func (s *Session) RequestTurnToken(token string) {
	if d, ok := types.ParseDirection(token); ok {
		s.RequestTurn(d)
	}
}

// Pump runs one Tick if the schedule says one is due. Clients call it from
// their frame loop.
func (s *Session) Pump() StepResult {
	s.mu.Lock()
	if s.state != Running || !s.speed.Due() {
		s.mu.Unlock()
		return StepResult{}
	}
	res, ev := s.tickLocked()
	s.mu.Unlock()

	s.notify(ev)
	return res
}

// Tick advances the snake one cell. It does nothing while Idle.
func (s *Session) Tick() StepResult {
	s.mu.Lock()
	if s.state != Running {
		s.mu.Unlock()
		s.log.Debug("tick ignored: session idle")
		return StepResult{}
	}
	res, ev := s.tickLocked()
	s.mu.Unlock()

	s.notify(ev)
	return res
}

func (s *Session) tickLocked() (StepResult, Event) {
	s.ticks++
	heading := s.steer.Commit()
	newHead := s.snake.GetHead().Add(heading.ToPoint())
	s.snake.Move(newHead)

	res := StepResult{Moved: true}
	if newHead == s.food {
		res.Ate = true
		s.placeFood()
		speed := s.speed.OnFoodEaten()
		s.log.WithFields(logrus.Fields{
			"score": s.snake.Len() - 1,
			"speed": speed,
		}).Debug("food eaten")
	} else {
		s.snake.RemoveTail()
	}
	res.Score = s.snake.Len() - 1

	// judged on the finished move so a vacated tail cell is free
	if cause := s.collisionMgr.Check(s.snake); cause != manager.NoCollision {
		res.Crashed = true
		res.Cause = cause
		newHigh := s.gameOverLocked(cause, res.Score)
		return res, Event{
			Kind:     EventGameOver,
			Score:    res.Score,
			NewHigh:  newHigh,
			Cause:    cause,
			Snapshot: s.snapshotLocked(),
		}
	}

	kind := EventMoved
	if res.Ate {
		kind = EventAte
	}
	return res, Event{Kind: kind, Score: res.Score, Snapshot: s.snapshotLocked()}
}

// gameOverLocked finalises the score and puts the board back to its spawn
// state in Idle.
func (s *Session) gameOverLocked(cause manager.CollisionType, score int) bool {
	now := s.clock.Now()
	newHigh := s.stateMgr.Finish(manager.RunRecord{
		RunID:     s.runID,
		StartTime: s.startedAt,
		EndTime:   now,
		Score:     score,
		Ticks:     s.ticks,
		Cause:     cause,
	})

	s.log.WithFields(logrus.Fields{
		"run":       s.runID,
		"score":     score,
		"highScore": s.stateMgr.GetHighScore(),
		"cause":     cause.String(),
		"ticks":     s.ticks,
	}).Info("game over")

	s.speed.Reset()
	s.snake.Reset(Spawn)
	s.placeFood()
	s.steer.Reset(DefaultHeading)
	s.state = Idle
	return newHigh
}

func (s *Session) placeFood() {
	food, ok := s.foodMgr.Place(s.snake.Occupies)
	if !ok {
		// only a snake covering the whole board gets here; its next move is fatal
		s.log.Warn("no free cell for food")
		return
	}
	s.food = food
}

// Snapshot returns a copy of the state for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		SessionID: s.id,
		Grid:      s.grid,
		State:     s.state,
		Snake:     s.snake.Segments(),
		Food:      s.food,
		Heading:   s.steer.Heading(),
		Score:     s.snake.Len() - 1,
		HighScore: s.stateMgr.GetHighScore(),
		Speed:     s.speed.Speed(),
		Ticks:     s.ticks,
	}
}

// Stats summarises the runs finished so far.
func (s *Session) Stats() manager.Summary {
	return s.stateMgr.Summary()
}

func (s *Session) notify(ev Event) {
	s.mu.Lock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.OnEvent(ev)
	}
}
