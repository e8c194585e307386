package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"grid-snake/game/clock"
	"grid-snake/game/manager"
	"grid-snake/game/types"
)

var epoch = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, opts ...Option) (*Session, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock(epoch)
	opts = append([]Option{WithSeed(42), WithClock(mock)}, opts...)
	return NewSession(opts...), mock
}

// setBoard replaces the snake, food and committed heading of a session.
func setBoard(s *Session, body []types.Point, food types.Point, heading types.Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snake.Body = append([]types.Point(nil), body...)
	s.food = food
	s.steer.Reset(heading)
}

func pts(coords ...int) []types.Point {
	body := make([]types.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		body = append(body, types.Point{X: coords[i], Y: coords[i+1]})
	}
	return body
}

func TestNewSessionIsIdleAtSpawn(t *testing.T) {
	s, _ := newTestSession(t)
	snap := s.Snapshot()

	assert.Equal(t, Idle, snap.State)
	assert.False(t, snap.Running())
	assert.Equal(t, Visibility{ShowInstructions: true, ShowBoard: false}, snap.Visibility())
	assert.Equal(t, []types.Point{Spawn}, snap.Snake)
	assert.Equal(t, types.Right, snap.Heading)
	assert.Equal(t, manager.InitialSpeed, snap.Speed)
	assert.Equal(t, 0, snap.Score)
	assert.NotEqual(t, Spawn, snap.Food)
	assert.True(t, snap.Grid.Contains(snap.Food))
}

func TestStartShowsBoard(t *testing.T) {
	s, _ := newTestSession(t)
	s.RequestStart()

	snap := s.Snapshot()
	assert.Equal(t, Running, snap.State)
	assert.Equal(t, Visibility{ShowInstructions: false, ShowBoard: true}, snap.Visibility())

	// a second start is a no-op
	setBoard(s, pts(3, 3, 2, 3), types.Point{X: 10, Y: 10}, types.Right)
	s.Start()
	assert.Equal(t, pts(3, 3, 2, 3), s.Snapshot().Snake)
}

func TestTickWhileIdleDoesNothing(t *testing.T) {
	s, _ := newTestSession(t)
	res := s.Tick()

	assert.False(t, res.Moved)
	assert.Equal(t, []types.Point{Spawn}, s.Snapshot().Snake)
	assert.Equal(t, 0, s.Snapshot().Ticks)
}

func TestTickMovesWithoutGrowing(t *testing.T) {
	s, _ := newTestSession(t)
	s.Start()
	setBoard(s, pts(8, 5), types.Point{X: 1, Y: 1}, types.Right)

	res := s.Tick()
	assert.True(t, res.Moved)
	assert.False(t, res.Ate)
	assert.False(t, res.Crashed)
	assert.Equal(t, pts(9, 5), s.Snapshot().Snake)
	assert.Equal(t, manager.InitialSpeed, s.Snapshot().Speed)
}

func TestTickEatsFood(t *testing.T) {
	s, _ := newTestSession(t)
	s.Start()
	setBoard(s, pts(8, 5), types.Point{X: 9, Y: 5}, types.Right)

	res := s.Tick()
	require.True(t, res.Ate)
	assert.Equal(t, 1, res.Score)

	snap := s.Snapshot()
	assert.Equal(t, pts(9, 5, 8, 5), snap.Snake)
	assert.Equal(t, 1, snap.Score)
	assert.Equal(t, manager.InitialSpeed-manager.SpeedStep, snap.Speed)
	assert.NotContains(t, snap.Snake, snap.Food)
	assert.True(t, snap.Grid.Contains(snap.Food))
}

func TestWallCollisionEndsRun(t *testing.T) {
	s, _ := newTestSession(t)
	s.Start()
	setBoard(s, pts(1, 5, 2, 5), types.Point{X: 10, Y: 10}, types.Left)

	res := s.Tick()
	require.True(t, res.Crashed)
	assert.Equal(t, manager.WallCollision, res.Cause)
	assert.Equal(t, 1, res.Score)

	snap := s.Snapshot()
	assert.Equal(t, Idle, snap.State)
	assert.Equal(t, 1, snap.HighScore)
	assert.Equal(t, []types.Point{Spawn}, snap.Snake)
	assert.Equal(t, DefaultHeading, snap.Heading)
	assert.Equal(t, manager.InitialSpeed, snap.Speed)
	assert.NotEqual(t, Spawn, snap.Food)
	assert.Equal(t, Visibility{ShowInstructions: true}, snap.Visibility())
	assert.Equal(t, 1, s.Stats().GamesPlayed)
}

func TestSelfCollisionEndsRun(t *testing.T) {
	s, _ := newTestSession(t)
	s.Start()
	// head at (5,5) came up from (5,6); turning right runs into (6,5)
	setBoard(s, pts(5, 5, 5, 6, 6, 6, 6, 5, 6, 4), types.Point{X: 1, Y: 1}, types.Up)
	s.RequestTurn(types.Right)

	res := s.Tick()
	require.True(t, res.Crashed)
	assert.Equal(t, manager.SelfCollision, res.Cause)
	assert.Equal(t, 4, s.Snapshot().HighScore)
	assert.Equal(t, Idle, s.Snapshot().State)
}

func TestHeadMayFollowVacatedTail(t *testing.T) {
	s, _ := newTestSession(t)
	s.Start()
	// a 2x2 loop: the head steps onto the cell the tail is leaving
	setBoard(s, pts(5, 5, 6, 5, 6, 6, 5, 6), types.Point{X: 1, Y: 1}, types.Left)
	s.RequestTurn(types.Down)

	res := s.Tick()
	assert.False(t, res.Crashed)
	assert.Equal(t, pts(5, 6, 5, 5, 6, 5, 6, 6), s.Snapshot().Snake)
}

func TestReversalIsIgnored(t *testing.T) {
	s, _ := newTestSession(t)
	s.Start()
	setBoard(s, pts(8, 5, 7, 5), types.Point{X: 1, Y: 1}, types.Right)

	s.RequestTurn(types.Left)
	s.RequestTurnToken("left")
	s.Tick()

	snap := s.Snapshot()
	assert.Equal(t, types.Right, snap.Heading)
	assert.Equal(t, pts(9, 5, 8, 5), snap.Snake)
}

func TestTurnRequestsCompareAgainstCommittedHeading(t *testing.T) {
	tests := []struct {
		name     string
		heading  types.Direction
		requests []types.Direction
		want     types.Direction
	}{
		{"same heading kept", types.Right, []types.Direction{types.Right}, types.Right},
		{"perpendicular accepted", types.Right, []types.Direction{types.Up}, types.Up},
		{"reversal dropped after turn", types.Right, []types.Direction{types.Up, types.Left}, types.Up},
		{"last accepted wins", types.Right, []types.Direction{types.Up, types.Down}, types.Down},
		{"invalid dropped", types.Down, []types.Direction{types.None, types.Direction(9)}, types.Down},
		{"only reversal", types.Up, []types.Direction{types.Down}, types.Up},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			s.Start()
			setBoard(s, pts(8, 5), types.Point{X: 1, Y: 1}, tt.heading)

			for _, d := range tt.requests {
				s.RequestTurn(d)
			}
			s.Tick()
			assert.Equal(t, tt.want, s.Snapshot().Heading)
		})
	}
}

func TestUnknownTokensAreIgnored(t *testing.T) {
	s, _ := newTestSession(t)
	s.Start()
	setBoard(s, pts(8, 5), types.Point{X: 1, Y: 1}, types.Right)

	for _, token := range []string{"", "north", "UP", "reverse"} {
		s.RequestTurnToken(token)
	}
	s.RequestTurnToken("down")
	s.Tick()
	assert.Equal(t, types.Down, s.Snapshot().Heading)
}

func TestPumpFollowsSchedule(t *testing.T) {
	s, mock := newTestSession(t)
	s.Start()
	setBoard(s, pts(8, 5), types.Point{X: 9, Y: 5}, types.Right)

	mock.Advance(manager.InitialSpeed - time.Millisecond)
	assert.False(t, s.Pump().Moved)

	mock.Advance(time.Millisecond)
	res := s.Pump()
	require.True(t, res.Ate)
	assert.False(t, s.Pump().Moved, "one tick per interval")

	// the schedule restarted at the faster interval
	mock.Advance(manager.InitialSpeed - manager.SpeedStep - time.Millisecond)
	assert.False(t, s.Pump().Moved)
	mock.Advance(time.Millisecond)
	assert.True(t, s.Pump().Moved)
}

func TestNoTickAfterGameOver(t *testing.T) {
	s, mock := newTestSession(t)
	s.Start()
	setBoard(s, pts(15, 5), types.Point{X: 1, Y: 1}, types.Right)

	mock.Advance(manager.InitialSpeed)
	require.True(t, s.Pump().Crashed)

	for i := 0; i < 10; i++ {
		mock.Advance(manager.InitialSpeed)
		assert.False(t, s.Pump().Moved)
	}
	assert.Equal(t, []types.Point{Spawn}, s.Snapshot().Snake)

	// a fresh run gets a fresh schedule
	s.Start()
	mock.Advance(manager.InitialSpeed)
	assert.True(t, s.Pump().Moved)
}

func TestHighScoreNeverDecreases(t *testing.T) {
	s, _ := newTestSession(t)

	for _, length := range []int{4, 2, 6, 1} {
		s.Start()
		body := make([]types.Point, 0, length)
		for i := 0; i < length; i++ {
			body = append(body, types.Point{X: 1 + i, Y: 1})
		}
		setBoard(s, body, types.Point{X: 15, Y: 10}, types.Up)
		s.Tick()
	}

	snap := s.Snapshot()
	assert.Equal(t, 5, snap.HighScore)
	summary := s.Stats()
	assert.Equal(t, 4, summary.GamesPlayed)
	assert.Equal(t, []int{3, 1, 5, 0}, summary.RecentScores)
}

func TestObserverEvents(t *testing.T) {
	var kinds []EventKind
	var over Event
	s, _ := newTestSession(t, WithObserver(ObserverFunc(func(ev Event) {
		kinds = append(kinds, ev.Kind)
		if ev.Kind == EventGameOver {
			over = ev
		}
	})))

	s.Start()
	setBoard(s, pts(14, 5), types.Point{X: 15, Y: 5}, types.Right)
	s.Tick() // eat
	s.Tick() // wall

	assert.Equal(t, []EventKind{EventStarted, EventAte, EventGameOver}, kinds)
	assert.Equal(t, 1, over.Score)
	assert.True(t, over.NewHigh)
	assert.Equal(t, manager.WallCollision, over.Cause)
	assert.Equal(t, Idle, over.Snapshot.State)
	assert.Equal(t, 1, over.Snapshot.HighScore)
}

func TestObserverMayRestartSession(t *testing.T) {
	s, _ := newTestSession(t)
	s.AddObserver(ObserverFunc(func(ev Event) {
		if ev.Kind == EventGameOver {
			s.RequestStart()
		}
	}))

	s.Start()
	setBoard(s, pts(15, 1), types.Point{X: 1, Y: 10}, types.Up)
	s.Tick()

	assert.Equal(t, Running, s.Snapshot().State)
	assert.Equal(t, []types.Point{Spawn}, s.Snapshot().Snake)
}

func TestConcurrentTurnRequests(t *testing.T) {
	s, mock := newTestSession(t)
	s.Start()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for j := 0; j < 200; j++ {
				s.RequestTurn(types.Directions[rng.Intn(4)])
			}
		}(uint64(i))
	}
	for i := 0; i < 200; i++ {
		mock.Advance(manager.InitialSpeed)
		s.Pump()
		if !s.Snapshot().Running() {
			s.Start()
		}
	}
	wg.Wait()
}

// TestRandomPlayInvariants drives many seeded games with random input and
// checks the board after every step.
func TestRandomPlayInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		s, _ := newTestSession(t, WithSeed(seed))
		rng := rand.New(rand.NewSource(seed * 31))

		maxFinal := 0
		prevHigh := 0
		s.Start()
		prev := s.Snapshot()

		for step := 0; step < 2000; step++ {
			if rng.Intn(3) == 0 {
				s.RequestTurn(types.Directions[rng.Intn(4)])
			}
			res := s.Tick()
			snap := s.Snapshot()

			assert.GreaterOrEqual(t, snap.HighScore, prevHigh)
			prevHigh = snap.HighScore

			if res.Crashed {
				if res.Score > maxFinal {
					maxFinal = res.Score
				}
				assert.Equal(t, maxFinal, snap.HighScore)
				assert.Equal(t, []types.Point{Spawn}, snap.Snake)
				assert.Equal(t, manager.InitialSpeed, snap.Speed)
				s.Start()
				prev = s.Snapshot()
				continue
			}

			require.True(t, res.Moved)
			assert.Equal(t, len(snap.Snake)-1, snap.Score)
			seen := make(map[types.Point]bool, len(snap.Snake))
			for _, p := range snap.Snake {
				assert.True(t, snap.Grid.Contains(p), "seed %d step %d: %v off board", seed, step, p)
				assert.False(t, seen[p], "seed %d step %d: %v repeated", seed, step, p)
				seen[p] = true
			}
			assert.False(t, seen[snap.Food], "food on snake")

			if res.Ate {
				assert.Equal(t, len(prev.Snake)+1, len(snap.Snake))
				assert.LessOrEqual(t, int64(snap.Speed), int64(prev.Speed))
			} else {
				assert.Equal(t, len(prev.Snake), len(snap.Snake))
				assert.Equal(t, prev.Speed, snap.Speed)
			}
			assert.GreaterOrEqual(t, int64(snap.Speed), int64(manager.MinSpeed))
			prev = snap
		}
	}
}
