package game

import (
	"snake/game/types"

	"github.com/pkg/errors"
)

var ErrInvalidConfig = errors.New("invalid game config")

// Config describes one play session.
type Config struct {
	Width   int
	Height  int
	Length  int // initial snake length
	Start   types.Point
	Heading types.Direction

	// FoodLifetime moves uneaten food after this many ticks. Zero keeps food in place.
	FoodLifetime int
	// BonusEvery makes one food in BonusEvery a bonus shape. Zero disables it.
	BonusEvery int
}

// DefaultConfig is the small board the web front end shipped with.
func DefaultConfig() Config {
	return Config{
		Width:   4,
		Height:  4,
		Length:  3,
		Start:   types.Point{X: 0, Y: 0},
		Heading: types.Up,
	}
}

// Validate checks what can be checked without laying out the snake.
func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return errors.Wrapf(ErrInvalidConfig, "grid %dx%d", c.Width, c.Height)
	}
	if c.Length < 1 {
		return errors.Wrapf(ErrInvalidConfig, "snake length %d", c.Length)
	}
	if c.Length > c.Width*c.Height {
		return errors.Wrapf(ErrInvalidConfig, "snake length %d exceeds %d cells", c.Length, c.Width*c.Height)
	}
	if c.Start.X < 0 || c.Start.X >= c.Width || c.Start.Y < 0 || c.Start.Y >= c.Height {
		return errors.Wrapf(ErrInvalidConfig, "start %v outside %dx%d", c.Start, c.Width, c.Height)
	}
	switch c.Heading {
	case types.Up, types.Down, types.Left, types.Right:
	default:
		return errors.Wrapf(ErrInvalidConfig, "heading %v", c.Heading)
	}
	if c.FoodLifetime < 0 {
		return errors.Wrapf(ErrInvalidConfig, "food lifetime %d", c.FoodLifetime)
	}
	if c.BonusEvery < 0 {
		return errors.Wrapf(ErrInvalidConfig, "bonus every %d", c.BonusEvery)
	}
	return nil
}
