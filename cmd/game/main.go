package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tmarek/starlane/internal/audio"
	"github.com/tmarek/starlane/internal/config"
	"github.com/tmarek/starlane/internal/loop"
	"github.com/tmarek/starlane/internal/run"
	"github.com/tmarek/starlane/internal/score"
)

func main() {
	// Stdout is the game screen; logs go to a file when asked for,
	// otherwise nowhere.
	logger := log.New(io.Discard)
	if path := config.GetEnv("STARLANE_LOG", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.New(f)
	}

	tuning := config.DefaultTuning()
	if path := config.GetEnv("STARLANE_TUNING", ""); path != "" {
		var err error
		tuning, err = config.LoadTuning(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load tuning: %v\n", err)
			os.Exit(1)
		}
	}

	pool := run.DefaultPool()
	if path := config.GetEnv("STARLANE_UPGRADES", ""); path != "" {
		var err error
		pool, err = run.LoadPool(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load upgrade pool: %v\n", err)
			os.Exit(1)
		}
	}

	var snd loop.Audio = &loop.NopAudio{}
	if config.GetEnvBool("STARLANE_AUDIO", true) {
		engine := audio.NewEngine(logger)
		defer engine.Close()
		snd = engine
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(reader, os.Stdout, loop.Options{
		Log:    logger,
		Tuning: tuning,
		Pool:   pool,
		Audio:  snd,
		Scores: score.Open(logger),
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
