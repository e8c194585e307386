package manager

import (
	"sync"
	"time"
)

// maxRecords caps the run history kept for the score graph.
const maxRecords = 200

// RunRecord describes one finished run.
type RunRecord struct {
	RunID     string        `json:"runId"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Score     int           `json:"score"`
	Ticks     int           `json:"ticks"`
	Cause     CollisionType `json:"cause"`
}

// Duration returns how long the run lasted.
func (r RunRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Summary aggregates every run finished in this process.
type Summary struct {
	HighScore       int
	GamesPlayed     int
	AverageScore    float64
	AverageDuration time.Duration
	RecentScores    []int
}

// StateManager tracks the high score and the in-memory run history.
// Nothing is written to disk; the high score lasts as long as the process.
type StateManager struct {
	mu            sync.RWMutex
	highScore     int
	records       []RunRecord
	gamesPlayed   int
	totalScore    int
	totalDuration time.Duration
}

func NewStateManager() *StateManager {
	return &StateManager{
		records: make([]RunRecord, 0),
	}
}

// Finish records a completed run and reports whether it set a new high
// score. The high score never decreases.
func (sm *StateManager) Finish(rec RunRecord) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.records) >= maxRecords {
		sm.records = sm.records[1:]
	}
	sm.records = append(sm.records, rec)
	sm.gamesPlayed++
	sm.totalScore += rec.Score
	sm.totalDuration += rec.Duration()

	if rec.Score > sm.highScore {
		sm.highScore = rec.Score
		return true
	}
	return false
}

func (sm *StateManager) GetHighScore() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.highScore
}

// GetScoreHistory returns the retained runs, oldest first.
func (sm *StateManager) GetScoreHistory() []RunRecord {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]RunRecord, len(sm.records))
	copy(history, sm.records)
	return history
}

func (sm *StateManager) Summary() Summary {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	s := Summary{
		HighScore:    sm.highScore,
		GamesPlayed:  sm.gamesPlayed,
		RecentScores: make([]int, len(sm.records)),
	}
	for i, rec := range sm.records {
		s.RecentScores[i] = rec.Score
	}
	if sm.gamesPlayed > 0 {
		s.AverageScore = float64(sm.totalScore) / float64(sm.gamesPlayed)
		s.AverageDuration = sm.totalDuration / time.Duration(sm.gamesPlayed)
	}
	return s
}
