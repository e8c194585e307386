package ai

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/exp/rand"

	"grid-snake/game/types"
)

// State is what the agent sees of the board around the head.
type State struct {
	RelativeFoodDir [2]int  // sign of food offset from head (x, y)
	DangerDirs      [4]bool // fatal cell in each direction (up, right, down, left)
	Heading         types.Direction
}

// NewState builds a State from the head, food and per-direction danger.
func NewState(head, food types.Point, dangers [4]bool, heading types.Direction) State {
	return State{
		RelativeFoodDir: [2]int{sign(food.X - head.X), sign(food.Y - head.Y)},
		DangerDirs:      dangers,
		Heading:         heading,
	}
}

func (s State) key() string {
	return fmt.Sprintf("%d,%d|%t%t%t%t|%d",
		s.RelativeFoodDir[0], s.RelativeFoodDir[1],
		s.DangerDirs[0], s.DangerDirs[1], s.DangerDirs[2], s.DangerDirs[3],
		s.Heading)
}

// Action is an absolute heading request.
type Action = types.Direction

type QTable map[string]map[Action]float64

// QLearning is a tabular Q-learner over the four headings.
type QLearning struct {
	mu           sync.Mutex
	QTable       QTable
	LearningRate float64
	Discount     float64
	Epsilon      float64
	TotalReward  float64
	GamesPlayed  int
	rng          *rand.Rand
}

func NewQLearning(rng *rand.Rand) *QLearning {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &QLearning{
		QTable:       make(QTable),
		LearningRate: 0.1,
		Discount:     0.9,
		Epsilon:      0.1,
		rng:          rng,
	}
}

// GetAction picks a heading for state. The reversal of the current heading
// is never chosen since the session would drop it anyway.
func (q *QLearning) GetAction(state State) Action {
	q.mu.Lock()
	defer q.mu.Unlock()

	legal := legalActions(state.Heading)
	if q.rng.Float64() < q.Epsilon {
		return legal[q.rng.Intn(len(legal))]
	}
	return q.bestActionLocked(state, legal)
}

func (q *QLearning) bestActionLocked(state State, legal []Action) Action {
	values := q.valuesLocked(state.key())

	best := legal[0]
	bestValue := math.Inf(-1)
	for _, action := range legal {
		v := values[action]
		// untrained ties go to the safe move
		if state.DangerDirs[dangerIndex(action)] {
			v -= 1e-6
		}
		if v > bestValue {
			bestValue = v
			best = action
		}
	}
	return best
}

func (q *QLearning) valuesLocked(key string) map[Action]float64 {
	values, exists := q.QTable[key]
	if !exists {
		values = make(map[Action]float64, 4)
		for _, a := range types.Directions {
			values[a] = 0
		}
		q.QTable[key] = values
	}
	return values
}

// Update applies the Q-learning rule for the transition state -action-> next.
// terminal transitions do not bootstrap from next.
func (q *QLearning) Update(state State, action Action, reward float64, next State, terminal bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	values := q.valuesLocked(state.key())
	maxNextQ := 0.0
	if !terminal {
		maxNextQ = math.Inf(-1)
		for _, v := range q.valuesLocked(next.key()) {
			if v > maxNextQ {
				maxNextQ = v
			}
		}
	}

	currentQ := values[action]
	values[action] = currentQ + q.LearningRate*(reward+q.Discount*maxNextQ-currentQ)
	q.TotalReward += reward
}

func legalActions(heading types.Direction) []Action {
	legal := make([]Action, 0, 4)
	for _, a := range types.Directions {
		if heading.Valid() && a == heading.Opposite() {
			continue
		}
		legal = append(legal, a)
	}
	return legal
}

func dangerIndex(d types.Direction) int {
	switch d {
	case types.Up:
		return 0
	case types.Right:
		return 1
	case types.Down:
		return 2
	default:
		return 3
	}
}

func sign(x int) int {
	if x > 0 {
		return 1
	} else if x < 0 {
		return -1
	}
	return 0
}
