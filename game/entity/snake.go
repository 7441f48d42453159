package entity

import (
	"snake/game/types"

	"github.com/pkg/errors"
)

var (
	ErrInvalidLength   = errors.New("snake length must be at least 1")
	ErrOutOfBounds     = errors.New("snake start lies outside the grid")
	ErrSnakeDoesNotFit = errors.New("snake does not fit on the grid")
)

// Segment is one body cell and the direction the snake was moving when it was placed.
type Segment struct {
	Position  types.Point
	Direction types.Direction
}

// Snake keeps its body ordered tail first, head last.
type Snake struct {
	Body    []Segment
	heading types.Direction
}

// NewSnake lays out length segments ending at start and marks them on grid.
// The body runs straight back from the head and folds sideways at the grid edge.
func NewSnake(length int, start types.Point, heading types.Direction, grid *types.Grid) (*Snake, error) {
	if length < 1 {
		return nil, errors.Wrapf(ErrInvalidLength, "got %d", length)
	}
	if !grid.InBounds(start) {
		return nil, errors.Wrapf(ErrOutOfBounds, "start %v on %dx%d", start, grid.Width, grid.Height)
	}

	// Walk backwards from the head; each step records the direction the
	// earlier segment must move in to reach the later one.
	positions := []types.Point{start}
	moves := []types.Direction{heading}
	taken := map[types.Point]bool{start: true}
	back := heading.Opposite()

	for len(positions) < length {
		cur := positions[len(positions)-1]
		placed := false
		for _, d := range layoutOrder(back) {
			next := cur.Add(d)
			if !grid.InBounds(next) || taken[next] {
				continue
			}
			positions = append(positions, next)
			moves = append(moves, d.Opposite())
			taken[next] = true
			back = d
			placed = true
			break
		}
		if !placed {
			return nil, errors.Wrapf(ErrSnakeDoesNotFit, "length %d from %v on %dx%d",
				length, start, grid.Width, grid.Height)
		}
	}

	s := &Snake{
		Body:    make([]Segment, length),
		heading: heading,
	}
	// positions runs head to tail; moves[i+1] is how segment i+1 reaches segment i.
	for i := range positions {
		dir := heading
		if i > 0 {
			dir = moves[i]
		}
		s.Body[length-1-i] = Segment{Position: positions[i], Direction: dir}
		grid.Set(positions[i], types.SnakeCell)
	}
	return s, nil
}

// layoutOrder tries to keep going straight, then turns.
func layoutOrder(back types.Direction) []types.Direction {
	if back.Vertical() {
		return []types.Direction{back, types.Right, types.Left, back.Opposite()}
	}
	return []types.Direction{back, types.Down, types.Up, back.Opposite()}
}

// ChangeDirection sets the heading used by the next move. A turn back onto
// the neck is refused and leaves the heading untouched.
func (s *Snake) ChangeDirection(dir types.Direction) bool {
	if dir == s.Head().Direction.Opposite() {
		return false
	}
	s.heading = dir
	return true
}

// Heading is the pending direction for the next move. ChangeDirection judges
// reversals against the head segment's direction, not against Heading, so
// Right then Left on an upward snake leaves Heading at Left.
func (s *Snake) Heading() types.Direction {
	return s.heading
}

// PeekNextHead returns where the head moves on the next advance. The point
// may lie outside the grid.
func (s *Snake) PeekNextHead() types.Point {
	return s.Head().Position.Add(s.heading)
}

// Advance appends the next head. The tail stays; the caller drops it when the snake did not eat.
func (s *Snake) Advance() Segment {
	head := Segment{Position: s.PeekNextHead(), Direction: s.heading}
	s.Body = append(s.Body, head)
	return head
}

func (s *Snake) PopTail() Segment {
	if len(s.Body) < 2 {
		panic("snake: cannot drop the only segment")
	}
	tail := s.Body[0]
	s.Body = s.Body[1:]
	return tail
}

func (s *Snake) Head() Segment {
	return s.Body[len(s.Body)-1]
}

func (s *Snake) Tail() Segment {
	return s.Body[0]
}

// Neck returns the segment behind the head, or the head itself for a one-cell snake.
func (s *Snake) Neck() Segment {
	if len(s.Body) < 2 {
		return s.Head()
	}
	return s.Body[len(s.Body)-2]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Segments returns a copy of the body, tail first.
func (s *Snake) Segments() []Segment {
	out := make([]Segment, len(s.Body))
	copy(out, s.Body)
	return out
}

func (s *Snake) Contains(p types.Point) bool {
	for _, seg := range s.Body {
		if seg.Position == p {
			return true
		}
	}
	return false
}
