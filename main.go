package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	"grid-snake/ai"
	"grid-snake/game"
	"grid-snake/sound"
	"grid-snake/tui"
	"grid-snake/ui"
)

func main() {
	client := flag.String("client", "gui", "Client to play with: gui or tui")
	seed := flag.Uint64("seed", 0, "Food placement seed (0 = time based)")
	autopilot := flag.Bool("autopilot", false, "Let the Q-learning agent play")
	mute := flag.Bool("mute", false, "Disable sound cues")
	cell := flag.Int("cell", 40, "Maximum GUI cell size in pixels")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logJSON := flag.Bool("log-json", false, "Log as JSON")
	logFile := flag.String("log-file", "", "Log file for the tui client (default: discard)")
	flag.Parse()

	log := logrus.New()
	if *logJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		log.WithError(err).Fatal("invalid -log-level")
	}
	log.SetLevel(level)

	if *client != "gui" && *client != "tui" {
		log.WithField("client", *client).Fatal("-client must be gui or tui")
	}
	if *cell <= 0 {
		log.WithField("cell", *cell).Fatal("-cell must be positive")
	}

	// the terminal owns stdout while the tui runs
	if *client == "tui" {
		if *logFile == "" {
			log.SetOutput(io.Discard)
		} else {
			f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				log.WithError(err).Fatal("open log file")
			}
			defer f.Close()
			log.SetOutput(f)
		}
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	session := game.NewSession(game.WithSeed(*seed), game.WithLogger(log))
	log.WithFields(logrus.Fields{
		"session": session.ID(),
		"seed":    *seed,
		"client":  *client,
	}).Info("session created")

	if !*mute {
		player, err := sound.New(log)
		if err != nil {
			log.WithError(err).Warn("sound disabled")
		}
		defer player.Close()
		session.AddObserver(player)
	}

	if *autopilot {
		agent := ai.NewQLearning(rand.New(rand.NewSource(*seed + 1)))
		session.AddObserver(ai.NewAutopilot(session, session.Grid(), agent, log))
		session.RequestStart()
	}

	switch *client {
	case "tui":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := tui.Run(ctx, session, log); err != nil {
			log.WithError(err).Error("tui exited")
		}
	default:
		ui.Run(session, int32(*cell), log)
	}

	stats := session.Stats()
	log.WithFields(logrus.Fields{
		"games":     stats.GamesPlayed,
		"highScore": stats.HighScore,
		"avgScore":  stats.AverageScore,
	}).Info("bye")
}
