// Command ampplay runs the amplifier in real time on the default audio
// output, fed by a synthetic plucked string or test tone.
//
// The terminal acts as the control surface: keys change parameters while
// audio plays, and an optional preset file is reloaded whenever it changes
// on disk.
//
// Examples:
//
//	ampplay
//	ampplay -input sine -freq 220
//	ampplay -preset lead.json -block 128
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/cwbudde/algo-amp/amp/engine"
	"github.com/cwbudde/algo-amp/amp/param"
	"github.com/cwbudde/algo-amp/internal/playback"
	"github.com/cwbudde/algo-amp/internal/preset"
	"golang.org/x/term"
)

func main() {
	rate := flag.Int("rate", 48000, "output sample rate in Hz")
	block := flag.Int("block", 256, "engine block size in samples")
	buffer := flag.Duration("buffer", 40*time.Millisecond, "audio device buffer length")
	input := flag.String("input", "pluck", "dry signal: pluck or sine")
	freq := flag.Float64("freq", 110, "input pitch in Hz")
	level := flag.Float64("level", 0.5, "input peak level")
	smoothing := flag.Duration("smoothing", param.DefaultSmoothing, "parameter smoothing time")
	presetPath := flag.String("preset", "", "JSON preset to load, watch and save to")
	flag.Parse()

	if err := run(*rate, *block, *buffer, *input, *freq, *level, *smoothing, *presetPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newInput(kind string, freq, level, rate float64) (playback.Input, error) {
	switch kind {
	case "pluck":
		return playback.NewPluck(freq, level, 2, 0.997, rate), nil
	case "sine":
		return playback.NewSine(freq, level, rate), nil
	default:
		return nil, fmt.Errorf("unknown input %q (want pluck or sine)", kind)
	}
}

func run(rate, block int, buffer time.Duration, inputKind string, freq, level float64, smoothing time.Duration, presetPath string) error {
	store := param.NewStore()

	if presetPath != "" {
		p, err := preset.Load(presetPath)
		switch {
		case err == nil:
			if err := p.Apply(store); err != nil {
				return err
			}
		case errors.Is(err, os.ErrNotExist):
			// Created on the first save.
		default:
			return err
		}
	}

	eng, err := engine.New(store, engine.WithSmoothingDuration(smoothing))
	if err != nil {
		return err
	}

	if err := eng.Configure(float64(rate), block); err != nil {
		return err
	}

	in, err := newInput(inputKind, freq, level, float64(rate))
	if err != nil {
		return err
	}

	player, err := playback.NewPlayer(rate, playback.NewStream(eng, in), buffer)
	if err != nil {
		return err
	}
	defer player.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if presetPath != "" {
		w, err := preset.NewWatcher(presetPath, store)
		if err != nil {
			return err
		}
		defer w.Close()

		go w.Run(ctx)
		go reportPresets(ctx, w)
	}

	player.Start()

	fmt.Println(help)

	return control(ctx, stop, store, player, presetPath)
}

func reportPresets(ctx context.Context, w *preset.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.Applied():
			fmt.Fprint(os.Stdout, "\r\npreset reloaded\r\n")
		case err := <-w.Errors():
			fmt.Fprintf(os.Stderr, "\r\npreset: %v\r\n", err)
		}
	}
}

// control reads keys from stdin until quit. Without a terminal it just
// plays until interrupted.
func control(ctx context.Context, stop context.CancelFunc, store *param.Store, player *playback.Player, presetPath string) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		<-ctx.Done()
		return nil
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(fd, old)

	keys := make(chan byte)

	go func() {
		buf := make([]byte, 1)

		for {
			if _, err := os.Stdin.Read(buf); err != nil {
				if !errors.Is(err, io.EOF) {
					fmt.Fprintf(os.Stderr, "\r\nstdin: %v\r\n", err)
				}

				stop()

				return
			}

			select {
			case keys <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Printf("\r%s", status(store))

	for {
		select {
		case <-ctx.Done():
			fmt.Print("\r\n")
			return nil

		case key := <-keys:
			switch handleKey(store, key) {
			case actionQuit:
				fmt.Print("\r\n")
				return nil
			case actionToggle:
				if player.Playing() {
					player.Pause()
				} else {
					player.Start()
				}
			case actionSave:
				if presetPath == "" {
					fmt.Print("\r\nno -preset file given\r\n")
					break
				}

				if err := preset.Save(presetPath, preset.FromStore(store)); err != nil {
					fmt.Fprintf(os.Stderr, "\r\nsave: %v\r\n", err)
				}
			}

			fmt.Printf("\r\033[K%s", status(store))
		}
	}
}
