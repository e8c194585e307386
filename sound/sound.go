// Package sound plays short tones for game events.
package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"grid-snake/game"
)

const sampleRate = beep.SampleRate(44100)

// Cue is one tone in a jingle.
type Cue struct {
	Freq     float64
	Duration time.Duration
}

var (
	eatCues      = []Cue{{Freq: 880, Duration: 50 * time.Millisecond}}
	gameOverCues = []Cue{
		{Freq: 440, Duration: 120 * time.Millisecond},
		{Freq: 330, Duration: 120 * time.Millisecond},
		{Freq: 220, Duration: 240 * time.Millisecond},
	}
)

// Player reacts to session events with sound.
type Player interface {
	game.Observer
	Close()
}

// Nop is a silent Player.
type Nop struct{}

func (Nop) OnEvent(game.Event) {}
func (Nop) Close()             {}

// Speaker plays cues through the system audio device.
type Speaker struct {
	mu     sync.Mutex
	closed bool
	log    logrus.FieldLogger
}

// New opens the audio device. When that fails the game can run without
// sound, so a Nop player is returned together with the error.
func New(log logrus.FieldLogger) (Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return Nop{}, fmt.Errorf("init speaker: %w", err)
	}
	return &Speaker{log: log}, nil
}

func (s *Speaker) OnEvent(ev game.Event) {
	switch ev.Kind {
	case game.EventAte:
		s.play(eatCues)
	case game.EventGameOver:
		s.play(gameOverCues)
	}
}

func (s *Speaker) play(cues []Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	streamer, err := Jingle(sampleRate, cues)
	if err != nil {
		s.log.WithError(err).Warn("build jingle")
		return
	}
	speaker.Play(streamer)
}

func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Clear()
}

// Jingle chains sine tones for cues into one streamer.
func Jingle(sr beep.SampleRate, cues []Cue) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(cues))
	for _, cue := range cues {
		sine, err := generators.SineTone(sr, cue.Freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.0fHz: %w", cue.Freq, err)
		}
		parts = append(parts, beep.Take(sr.N(cue.Duration), sine))
	}
	return beep.Seq(parts...), nil
}
