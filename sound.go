package main

import (
	"time"

	"snake/game"
	"snake/game/entity"
	"snake/game/types"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Sounds plays short tones on eat and when a session ends. It embeds
// NopRenderer so it can sit in a game.Renderers fan-out.
type Sounds struct {
	game.NopRenderer
	enabled bool
}

// NewSounds opens the speaker. On error the returned Sounds stays silent.
func NewSounds() (*Sounds, error) {
	s := &Sounds{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return s, err
	}
	s.enabled = true
	return s, nil
}

func (s *Sounds) OnEat(_ *entity.Snake, eaten types.Food, _ bool) {
	if eaten.Shape == types.Bonus {
		s.tone(1100, 80*time.Millisecond)
		return
	}
	s.tone(880, 50*time.Millisecond)
}

func (s *Sounds) tone(freq float64, d time.Duration) {
	if !s.enabled {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

// End plays a falling tone for a loss and a rising one for a win.
func (s *Sounds) End(state types.State) {
	switch state {
	case types.Won:
		s.tone(1320, 150*time.Millisecond)
	case types.Over:
		s.tone(220, 300*time.Millisecond)
	}
}

func (s *Sounds) Close() {
	if s.enabled {
		speaker.Close()
	}
}
