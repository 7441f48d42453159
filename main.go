package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"snake/game"
	"snake/game/types"
	"snake/term"
	"snake/ui"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/exp/rand"
)

type options struct {
	speed  time.Duration
	gui    bool
	mute   bool
	sounds *Sounds
}

func main() {
	width := flag.Int("width", 20, "Grid width in cells")
	height := flag.Int("height", 15, "Grid height in cells")
	length := flag.Int("length", 4, "Initial snake length")
	speed := flag.Int("speed", 150, "Milliseconds between ticks (lower = faster)")
	gui := flag.Bool("gui", false, "Open a window instead of drawing in the terminal")
	logPath := flag.String("log", "", "Append a session log to this file")
	seed := flag.Uint64("seed", 0, "Food placement seed (0 = time based)")
	foodLifetime := flag.Int("food-lifetime", 0, "Move uneaten food after this many ticks (0 = never)")
	bonusEvery := flag.Int("bonus-every", 5, "One food in N is a bonus shape (0 = never)")
	mute := flag.Bool("mute", false, "Disable sound")
	flag.Parse()

	cfg := game.Config{
		Width:        *width,
		Height:       *height,
		Length:       *length,
		Start:        types.Point{X: *width / 2, Y: *height / 2},
		Heading:      types.Right,
		FoodLifetime: *foodLifetime,
		BonusEvery:   *bonusEvery,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		os.Exit(2)
	}

	logger, closeLog, err := openLog(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(*seed))
	logger.Printf("seed %d", *seed)

	opts := options{
		speed: time.Duration(*speed) * time.Millisecond,
		gui:   *gui,
		mute:  *mute,
	}

	sounds := &Sounds{}
	if !opts.mute {
		if sounds, err = NewSounds(); err != nil {
			// Non-fatal, game can run without sound
			logger.Printf("Audio initialization failed: %v", err)
		}
	}
	defer sounds.Close()
	opts.sounds = sounds

	newGame := func(r game.Renderer) (*game.Game, error) {
		return game.New(cfg, game.Renderers(r, sounds), game.WithRandom(rng), game.WithLogger(logger))
	}

	if opts.gui {
		err = runWindow(cfg, opts, newGame)
	} else {
		err = runTerminal(cfg, opts, newGame)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		os.Exit(1)
	}
}

func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, "snake ", log.LstdFlags), func() { f.Close() }, nil
}

func endMessage(g *game.Game) string {
	switch g.State() {
	case types.Over:
		return fmt.Sprintf("Game over (%v collision), score %d. r: restart, q: quit", g.Collision(), g.Score())
	case types.Won:
		return fmt.Sprintf("You filled the grid! Score %d. r: restart, q: quit", g.Score())
	}
	return ""
}

func runTerminal(cfg game.Config, opts options, newGame func(game.Renderer) (*game.Game, error)) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	renderer := term.NewRenderer(screen, cfg.Width, cfg.Height)
	g, err := newGame(renderer)
	if err != nil {
		return err
	}
	if g.State().Terminal() {
		renderer.ShowMessage(endMessage(g))
	}

	ticker := time.NewTicker(opts.speed)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			key, ok := ev.(*tcell.EventKey)
			if !ok {
				if _, resized := ev.(*tcell.EventResize); resized {
					screen.Sync()
				}
				continue
			}
			if term.IsQuit(key) {
				g.Quit()
				return nil
			}
			if dir, ok := term.DirectionFor(key); ok {
				g.ChangeDirection(dir)
				continue
			}
			if key.Key() != tcell.KeyRune {
				continue
			}
			switch key.Rune() {
			case 'f':
				g.RelocateFood()
			case 'r':
				if g.State().Terminal() {
					if g, err = newGame(renderer); err != nil {
						return err
					}
				}
			}

		case <-ticker.C:
			if g.State().Terminal() {
				continue
			}
			g.Tick()
			if g.State().Terminal() {
				renderer.ShowMessage(endMessage(g))
				opts.sounds.End(g.State())
			}
		}
	}
}

func runWindow(cfg game.Config, opts options, newGame func(game.Renderer) (*game.Game, error)) error {
	rl.InitWindow(1024, 800, "Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	renderer := ui.NewRenderer(cfg.Width, cfg.Height)
	g, err := newGame(renderer)
	if err != nil {
		return err
	}

	keys := map[int32]types.Direction{
		rl.KeyUp:    types.Up,
		rl.KeyDown:  types.Down,
		rl.KeyLeft:  types.Left,
		rl.KeyRight: types.Right,
		rl.KeyW:     types.Up,
		rl.KeyS:     types.Down,
		rl.KeyA:     types.Left,
		rl.KeyD:     types.Right,
	}

	lastUpdate := time.Now()
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			g.Quit()
			break
		}
		for key, dir := range keys {
			if rl.IsKeyPressed(key) {
				g.ChangeDirection(dir)
			}
		}
		if rl.IsKeyPressed(rl.KeyF) {
			g.RelocateFood()
		}
		if rl.IsKeyPressed(rl.KeyR) && g.State().Terminal() {
			if g, err = newGame(renderer); err != nil {
				return err
			}
		}

		// Update game state at fixed interval
		if time.Since(lastUpdate) >= opts.speed {
			running := !g.State().Terminal()
			g.Tick()
			if running && g.State().Terminal() {
				opts.sounds.End(g.State())
			}
			lastUpdate = time.Now()
		}

		renderer.Draw(endMessage(g))
	}
	return nil
}
