package game

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"snake/game/entity"
	"snake/game/types"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// sequence returns its values in order, then repeats the last one.
type sequence struct {
	values []int
	calls  int
}

func (s *sequence) Intn(n int) int {
	v := s.values[len(s.values)-1]
	if s.calls < len(s.values) {
		v = s.values[s.calls]
	}
	s.calls++
	return v % n
}

type moveEvent struct {
	head      types.Point
	vacated   types.Point
	foodAhead bool
}

type recorder struct {
	inits   [][]types.Point
	moves   []moveEvent
	eats    []types.Food
	added   []types.Food
	removed []types.Food
}

func bodyOf(s *entity.Snake) []types.Point {
	out := make([]types.Point, 0, s.Len())
	for _, seg := range s.Segments() {
		out = append(out, seg.Position)
	}
	return out
}

func (r *recorder) OnInit(s *entity.Snake) {
	r.inits = append(r.inits, bodyOf(s))
}

func (r *recorder) OnMove(s *entity.Snake, vacated types.Point, foodAhead bool) {
	r.moves = append(r.moves, moveEvent{head: s.Head().Position, vacated: vacated, foodAhead: foodAhead})
}

func (r *recorder) OnEat(s *entity.Snake, eaten types.Food, _ bool) {
	r.eats = append(r.eats, eaten)
}

func (r *recorder) OnFoodAdded(f types.Food) {
	r.added = append(r.added, f)
}

func (r *recorder) OnFoodRemoved(f types.Food) {
	r.removed = append(r.removed, f)
}

// checkInvariants verifies that grid occupancy matches the snake and the food.
func checkInvariants(t *testing.T, g *Game) {
	t.Helper()
	grid := g.Grid()
	body := map[types.Point]bool{}
	for _, seg := range g.Snake().Segments() {
		if body[seg.Position] {
			t.Fatalf("segment repeats at %v", seg.Position)
		}
		body[seg.Position] = true
	}
	food, hasFood := g.Food()

	foodCells := 0
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			switch grid.Get(p) {
			case types.SnakeCell:
				if !body[p] {
					t.Fatalf("cell %v marked snake but not in body", p)
				}
			case types.FoodCell:
				foodCells++
				if !hasFood || food.Location != p {
					t.Fatalf("cell %v marked food, current food %v (present=%v)", p, food.Location, hasFood)
				}
			default:
				if body[p] {
					t.Fatalf("body segment %v not marked on grid", p)
				}
			}
		}
	}
	if hasFood && foodCells != 1 {
		t.Fatalf("expected exactly one food cell, got %d", foodCells)
	}
	if !hasFood && foodCells != 0 {
		t.Fatalf("expected no food cells, got %d", foodCells)
	}
}

func TestEndToEndEat(t *testing.T) {
	rec := &recorder{}
	g, err := New(DefaultConfig(), rec, WithRandom(&sequence{values: []int{0}}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if len(rec.inits) != 1 {
		t.Fatalf("expected one init notification, got %d", len(rec.inits))
	}
	want := []types.Point{{X: 0, Y: 2}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	for i, p := range want {
		if rec.inits[0][i] != p {
			t.Fatalf("init body[%d]=%v want=%v", i, rec.inits[0][i], p)
		}
	}

	food, ok := g.Food()
	if !ok || food.Location != (types.Point{X: 1, Y: 0}) {
		t.Fatalf("expected first food at (1,0), got %v (present=%v)", food.Location, ok)
	}
	if len(rec.added) != 1 {
		t.Fatalf("expected one food-added notification, got %d", len(rec.added))
	}
	checkInvariants(t, g)

	if !g.ChangeDirection(types.Right) {
		t.Fatal("expected turn right to be accepted")
	}
	g.Tick()

	if g.State() != types.Running {
		t.Fatalf("expected running, got %v", g.State())
	}
	if g.Score() != 1 {
		t.Errorf("expected score 1, got %d", g.Score())
	}
	if g.Snake().Len() != 4 {
		t.Errorf("expected length 4, got %d", g.Snake().Len())
	}
	if len(rec.eats) != 1 || rec.eats[0].Location != (types.Point{X: 1, Y: 0}) {
		t.Errorf("expected one eat at (1,0), got %v", rec.eats)
	}
	if len(rec.moves) != 0 {
		t.Errorf("eating should not send a move notification, got %d", len(rec.moves))
	}

	next, ok := g.Food()
	if !ok {
		t.Fatal("expected new food after eating")
	}
	if next.Location == food.Location {
		t.Errorf("new food placed on the eaten cell %v", next.Location)
	}
	if len(rec.added) != 2 || rec.added[1] != next {
		t.Errorf("expected second food-added for %v, got %v", next, rec.added)
	}
	checkInvariants(t, g)
}

func TestFullGridWins(t *testing.T) {
	cfg := Config{Width: 2, Height: 2, Length: 3, Start: types.Point{X: 0, Y: 0}, Heading: types.Up}
	rec := &recorder{}
	g, err := New(cfg, rec, WithRandom(rand.New(rand.NewSource(3))))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if n := g.Grid().Count(types.SnakeCell); n != 3 {
		t.Fatalf("expected 3 snake cells after construction, got %d", n)
	}

	food, ok := g.Food()
	if !ok || food.Location != (types.Point{X: 1, Y: 0}) {
		t.Fatalf("expected food on the only empty cell (1,0), got %v (present=%v)", food.Location, ok)
	}

	g.ChangeDirection(types.Right)
	g.Tick()

	if g.State() != types.Won {
		t.Fatalf("expected won, got %v", g.State())
	}
	if g.Score() != 1 || g.Snake().Len() != 4 {
		t.Errorf("expected score 1 and length 4, got %d and %d", g.Score(), g.Snake().Len())
	}
	if _, ok := g.Food(); ok {
		t.Error("expected no food on a full grid")
	}
	if len(rec.added) != 1 {
		t.Errorf("expected no food-added after the winning eat, got %d notifications", len(rec.added))
	}
	checkInvariants(t, g)

	ticks := g.Ticks()
	g.Tick()
	if g.Ticks() != ticks || g.State() != types.Won {
		t.Error("tick after winning should be a no-op")
	}
}

func TestStartsWonWhenSnakeFillsGrid(t *testing.T) {
	cfg := Config{Width: 2, Height: 1, Length: 2, Start: types.Point{X: 0, Y: 0}, Heading: types.Left}
	g, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.State() != types.Won {
		t.Errorf("expected won at construction, got %v", g.State())
	}
}

func TestSelfCollision(t *testing.T) {
	cfg := Config{Width: 5, Height: 5, Length: 5, Start: types.Point{X: 2, Y: 2}, Heading: types.Up}
	rec := &recorder{}
	g, err := New(cfg, rec, WithRandom(&sequence{values: []int{0}}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	g.ChangeDirection(types.Right)
	g.Tick()
	g.ChangeDirection(types.Down)
	g.Tick()
	g.ChangeDirection(types.Left)
	if g.State() != types.Running {
		t.Fatalf("expected running before the collision, got %v", g.State())
	}

	before := bodyOf(g.Snake())
	cells := make([]types.CellState, 0, 25)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			cells = append(cells, g.Grid().Get(types.Point{X: x, Y: y}))
		}
	}
	moves := len(rec.moves)

	if !g.Snake().Contains(g.Snake().PeekNextHead()) {
		t.Fatalf("setup: next head %v should hit the body", g.Snake().PeekNextHead())
	}
	g.Tick()

	if g.State() != types.Over || g.Collision() != types.SelfCollision {
		t.Fatalf("expected over by self collision, got %v / %v", g.State(), g.Collision())
	}
	after := bodyOf(g.Snake())
	if len(after) != len(before) {
		t.Fatalf("length changed on collision: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("body[%d] changed on collision: %v -> %v", i, before[i], after[i])
		}
	}
	i := 0
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if got := g.Grid().Get(types.Point{X: x, Y: y}); got != cells[i] {
				t.Fatalf("cell (%d,%d) changed on collision: %v -> %v", x, y, cells[i], got)
			}
			i++
		}
	}
	if len(rec.moves) != moves {
		t.Error("collision should not send a move notification")
	}
}

func TestFollowingTailIsCollision(t *testing.T) {
	cfg := Config{Width: 4, Height: 4, Length: 4, Start: types.Point{X: 1, Y: 1}, Heading: types.Up}
	g, err := New(cfg, nil, WithRandom(&sequence{values: []int{0}}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Curl into a 2x2 ring so the head points at the cell the tail is about to leave.
	g.ChangeDirection(types.Right)
	g.Tick()
	g.ChangeDirection(types.Down)
	g.Tick()
	g.ChangeDirection(types.Left)

	if next, tail := g.Snake().PeekNextHead(), g.Snake().Tail().Position; next != tail {
		t.Fatalf("setup: expected next head on the tail %v, got %v", tail, next)
	}
	g.Tick()
	if g.State() != types.Over || g.Collision() != types.SelfCollision {
		t.Errorf("expected self collision, got %v / %v", g.State(), g.Collision())
	}
}

func TestWallCollision(t *testing.T) {
	rec := &recorder{}
	g, err := New(DefaultConfig(), rec, WithRandom(&sequence{values: []int{0}}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.Tick()
	if g.State() != types.Over || g.Collision() != types.WallCollision {
		t.Fatalf("expected over by wall collision, got %v / %v", g.State(), g.Collision())
	}
	if len(rec.moves) != 0 {
		t.Error("wall collision should not send a move notification")
	}
	if g.ChangeDirection(types.Right) {
		t.Error("direction changes after game over should be refused")
	}
	checkInvariants(t, g)

	ticks := g.Ticks()
	body := bodyOf(g.Snake())
	cells := make([]types.CellState, 0, g.Grid().Len())
	for y := 0; y < g.Grid().Height; y++ {
		for x := 0; x < g.Grid().Width; x++ {
			cells = append(cells, g.Grid().Get(types.Point{X: x, Y: y}))
		}
	}

	g.Tick()
	if g.Ticks() != ticks {
		t.Errorf("expected tick count to stay %d, got %d", ticks, g.Ticks())
	}
	after := bodyOf(g.Snake())
	if len(after) != len(body) {
		t.Fatalf("expected body length %d after game over, got %d", len(body), len(after))
	}
	for i := range body {
		if after[i] != body[i] {
			t.Errorf("segment %d moved after game over: %v -> %v", i, body[i], after[i])
		}
	}
	i := 0
	for y := 0; y < g.Grid().Height; y++ {
		for x := 0; x < g.Grid().Width; x++ {
			p := types.Point{X: x, Y: y}
			if got := g.Grid().Get(p); got != cells[i] {
				t.Errorf("cell %v changed after game over: %v -> %v", p, cells[i], got)
			}
			i++
		}
	}
	if len(rec.moves) != 0 || len(rec.eats) != 0 {
		t.Error("tick after game over should not notify")
	}

	g.Quit()
	if g.State() != types.Over || g.Collision() != types.WallCollision {
		t.Errorf("quit after game over should keep over / wall, got %v / %v", g.State(), g.Collision())
	}
}

func TestQuitKeepsWon(t *testing.T) {
	cfg := Config{Width: 2, Height: 1, Length: 2, Start: types.Point{X: 1, Y: 0}, Heading: types.Right}
	g, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.State() != types.Won {
		t.Fatalf("expected won, got %v", g.State())
	}
	g.Quit()
	if g.State() != types.Won {
		t.Errorf("quit after a win should keep won, got %v", g.State())
	}
}

func TestMoveNotification(t *testing.T) {
	cfg := Config{Width: 6, Height: 6, Length: 3, Start: types.Point{X: 2, Y: 3}, Heading: types.Up}
	rec := &recorder{}
	// 33 empty cells; the last one is (5,5), away from the path.
	g, err := New(cfg, rec, WithRandom(&sequence{values: []int{32}}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if food, _ := g.Food(); food.Location != (types.Point{X: 5, Y: 5}) {
		t.Fatalf("setup: expected food at (5,5), got %v", food.Location)
	}

	tail := g.Snake().Tail().Position
	g.Tick()

	if len(rec.moves) != 1 {
		t.Fatalf("expected one move notification, got %d", len(rec.moves))
	}
	m := rec.moves[0]
	if m.head != (types.Point{X: 2, Y: 2}) {
		t.Errorf("expected new head (2,2), got %v", m.head)
	}
	if m.vacated != tail {
		t.Errorf("expected vacated %v, got %v", tail, m.vacated)
	}
	if g.Grid().Get(tail) != types.EmptyCell {
		t.Errorf("vacated cell %v not cleared", tail)
	}
	if g.Snake().Len() != 3 {
		t.Errorf("expected length 3, got %d", g.Snake().Len())
	}
	checkInvariants(t, g)
}

func TestFoodAheadFlag(t *testing.T) {
	cfg := Config{Width: 4, Height: 4, Length: 2, Start: types.Point{X: 0, Y: 2}, Heading: types.Up}
	rec := &recorder{}
	// Body (0,3) (0,2); first empty in row-major order is (0,0).
	g, err := New(cfg, rec, WithRandom(&sequence{values: []int{0}}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.Tick()
	if len(rec.moves) != 1 || !rec.moves[0].foodAhead {
		t.Fatalf("expected food ahead after moving to (0,1), got %+v", rec.moves)
	}
}

func TestReversalRejected(t *testing.T) {
	g, err := New(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := g.Snake().PeekNextHead()
	if g.ChangeDirection(types.Down) {
		t.Error("expected reversal to be rejected")
	}
	if got := g.Snake().PeekNextHead(); got != before {
		t.Errorf("expected next head %v, got %v", before, got)
	}
}

func TestQuitIsSticky(t *testing.T) {
	var logs bytes.Buffer
	g, err := New(DefaultConfig(), nil, WithLogger(log.New(&logs, "", 0)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.ChangeDirection(types.Right)
	g.Quit()
	g.Quit()

	body := bodyOf(g.Snake())
	for i := 0; i < 3; i++ {
		g.Tick()
	}
	if g.State() != types.Quit {
		t.Fatalf("expected quit, got %v", g.State())
	}
	if g.Ticks() != 0 {
		t.Errorf("ticks after quit should be no-ops, counted %d", g.Ticks())
	}
	if after := bodyOf(g.Snake()); after[len(after)-1] != body[len(body)-1] {
		t.Error("snake moved after quit")
	}
	if g.ChangeDirection(types.Down) {
		t.Error("direction changes after quit should be refused")
	}
	if n := strings.Count(logs.String(), "-> quit"); n != 1 {
		t.Errorf("expected one quit transition logged, got %d:\n%s", n, logs.String())
	}
	if !strings.Contains(logs.String(), g.ID()) {
		t.Error("expected log lines to carry the session id")
	}
}

func TestFoodLifetime(t *testing.T) {
	cfg := Config{
		Width: 6, Height: 6, Length: 2,
		Start: types.Point{X: 3, Y: 4}, Heading: types.Up,
		FoodLifetime: 3,
	}
	rec := &recorder{}
	g, err := New(cfg, rec, WithRandom(&sequence{values: []int{0, 1}}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first, _ := g.Food()
	if first.Location != (types.Point{X: 0, Y: 0}) {
		t.Fatalf("setup: expected food at (0,0), got %v", first.Location)
	}

	g.Tick()
	g.Tick()
	if len(rec.removed) != 0 {
		t.Fatalf("food moved too early after %d ticks", g.Ticks())
	}
	g.Tick()

	if len(rec.removed) != 1 || rec.removed[0] != first {
		t.Fatalf("expected %v removed, got %v", first, rec.removed)
	}
	second, ok := g.Food()
	if !ok || second.Location != (types.Point{X: 1, Y: 0}) {
		t.Fatalf("expected food moved to (1,0), got %v (present=%v)", second.Location, ok)
	}
	if len(rec.added) != 2 {
		t.Errorf("expected two food-added notifications, got %d", len(rec.added))
	}
	checkInvariants(t, g)
}

func TestRelocateFood(t *testing.T) {
	rec := &recorder{}
	g, err := New(DefaultConfig(), rec, WithRandom(&sequence{values: []int{0, 2}}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	old, _ := g.Food()
	g.RelocateFood()

	food, ok := g.Food()
	if !ok {
		t.Fatal("expected food after relocation")
	}
	if len(rec.removed) != 1 || rec.removed[0] != old {
		t.Errorf("expected %v removed, got %v", old, rec.removed)
	}
	// Empty cells after clearing (1,0): (1,0) (2,0) (3,0) ...; index 2 is (3,0).
	if food.Location != (types.Point{X: 3, Y: 0}) {
		t.Errorf("expected food at (3,0), got %v", food.Location)
	}
	checkInvariants(t, g)
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	dirs := []types.Direction{types.Up, types.Down, types.Left, types.Right}
	for seed := uint64(1); seed <= 30; seed++ {
		cfg := Config{
			Width: 8, Height: 8, Length: 3,
			Start: types.Point{X: 4, Y: 4}, Heading: types.Right,
			FoodLifetime: 7, BonusEvery: 3,
		}
		g, err := New(cfg, nil, WithRandom(rand.New(rand.NewSource(seed))))
		if err != nil {
			t.Fatalf("seed %d: New: %v", seed, err)
		}
		moves := rand.New(rand.NewSource(seed * 977))
		checkInvariants(t, g)

		for step := 0; step < 500 && !g.State().Terminal(); step++ {
			if moves.Intn(3) == 0 {
				g.ChangeDirection(dirs[moves.Intn(len(dirs))])
			}
			length, score := g.Snake().Len(), g.Score()
			g.Tick()

			switch {
			case g.State() == types.Over:
				if g.Snake().Len() != length {
					t.Fatalf("seed %d: length changed on collision", seed)
				}
			case g.Score() == score+1:
				if g.Snake().Len() != length+1 {
					t.Fatalf("seed %d: expected growth by one on eat, %d -> %d", seed, length, g.Snake().Len())
				}
			default:
				if g.Snake().Len() != length {
					t.Fatalf("seed %d: length changed without eating, %d -> %d", seed, length, g.Snake().Len())
				}
			}
			checkInvariants(t, g)
		}
	}
}

func TestRenderersFanOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	g, err := New(DefaultConfig(), Renderers(a, b), WithRandom(&sequence{values: []int{0}}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.ChangeDirection(types.Right)
	g.Tick()

	for name, r := range map[string]*recorder{"first": a, "second": b} {
		if len(r.inits) != 1 || len(r.eats) != 1 || len(r.added) != 2 {
			t.Errorf("%s renderer: expected 1 init, 1 eat, 2 added; got %d, %d, %d",
				name, len(r.inits), len(r.eats), len(r.added))
		}
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"zero width", Config{Width: 0, Height: 3, Length: 1}, ErrInvalidConfig},
		{"zero length", Config{Width: 3, Height: 3, Length: 0}, ErrInvalidConfig},
		{"longer than grid", Config{Width: 2, Height: 2, Length: 5}, ErrInvalidConfig},
		{"start outside", Config{Width: 3, Height: 3, Length: 1, Start: types.Point{X: 3, Y: 0}}, ErrInvalidConfig},
		{"bad heading", Config{Width: 3, Height: 3, Length: 1, Heading: types.Direction(9)}, ErrInvalidConfig},
		{"negative lifetime", Config{Width: 3, Height: 3, Length: 1, FoodLifetime: -1}, ErrInvalidConfig},
		{"does not fit", Config{Width: 3, Height: 1, Length: 3, Start: types.Point{X: 1, Y: 0}}, entity.ErrSnakeDoesNotFit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
