package game

import (
	"io"
	"log"
	"time"

	"snake/game/entity"
	"snake/game/manager"
	"snake/game/types"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Game owns the grid, the snake and the food of one play session. It is not
// safe for concurrent use; the driver serialises Tick and ChangeDirection.
type Game struct {
	id     string
	config Config

	grid  *types.Grid
	snake *entity.Snake

	food    types.Food
	hasFood bool
	foodAge int

	score     int
	state     types.State
	collision types.CollisionType
	ticks     int

	renderer   Renderer
	foods      *manager.FoodManager
	collisions *manager.CollisionManager
	rng        manager.Random
	logger     *log.Logger
}

type Option func(*Game)

// WithRandom sets the source food placement draws from.
func WithRandom(rng manager.Random) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// New builds a session, reports the initial layout to r and places the first food.
func New(cfg Config, r Renderer, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = NopRenderer{}
	}

	g := &Game{
		id:         uuid.New().String(),
		config:     cfg,
		grid:       types.NewGrid(cfg.Width, cfg.Height),
		state:      types.Running,
		renderer:   r,
		collisions: manager.NewCollisionManager(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard, "", 0)
	}
	g.foods = manager.NewFoodManager(g.rng, cfg.BonusEvery)

	snake, err := entity.NewSnake(cfg.Length, cfg.Start, cfg.Heading, g.grid)
	if err != nil {
		return nil, errors.Wrap(err, "create snake")
	}
	g.snake = snake

	g.logger.Printf("session %s: %dx%d grid, snake of %d at %v heading %v",
		g.id, cfg.Width, cfg.Height, cfg.Length, cfg.Start, cfg.Heading)

	g.renderer.OnInit(g.snake)
	g.addFood()
	return g, nil
}

// Tick advances the snake by one cell. It does nothing once the game has ended.
func (g *Game) Tick() {
	if g.state.Terminal() {
		return
	}
	g.ticks++

	next := g.snake.PeekNextHead()
	outcome := g.collisions.Classify(g.grid, next)

	switch outcome {
	case manager.Move:
		head := g.snake.Advance()
		g.grid.Set(head.Position, types.SnakeCell)
		tail := g.snake.PopTail()
		g.grid.Set(tail.Position, types.EmptyCell)
		g.renderer.OnMove(g.snake, tail.Position, g.foodAhead())
		g.ageFood()

	case manager.Eat:
		eaten := g.food
		head := g.snake.Advance()
		g.grid.Set(head.Position, types.SnakeCell)
		g.hasFood = false
		g.score++
		g.renderer.OnEat(g.snake, eaten, g.foodAhead())
		g.addFood()

	case manager.HitSelf, manager.HitWall:
		g.collision = outcome.Collision()
		g.setState(types.Over)
	}
}

// ChangeDirection forwards a turn to the snake. It reports false for a
// reversal or when the game has ended.
func (g *Game) ChangeDirection(dir types.Direction) bool {
	if g.state.Terminal() {
		return false
	}
	return g.snake.ChangeDirection(dir)
}

// Quit stops a running session for good. A session that already ended
// keeps its end state.
func (g *Game) Quit() {
	if g.state.Terminal() {
		return
	}
	g.setState(types.Quit)
}

// RelocateFood removes the current food and places it again. The new cell
// may be the old one when nothing else is free.
func (g *Game) RelocateFood() {
	if g.state.Terminal() || !g.hasFood {
		return
	}
	old := g.food
	g.foods.Remove(g.grid, old)
	g.hasFood = false
	g.renderer.OnFoodRemoved(old)
	g.addFood()
}

func (g *Game) addFood() {
	food, err := g.foods.Place(g.grid)
	if errors.Is(err, manager.ErrNoEmptyCell) {
		g.setState(types.Won)
		return
	}
	g.food = food
	g.hasFood = true
	g.foodAge = 0
	g.renderer.OnFoodAdded(food)
}

func (g *Game) ageFood() {
	if g.config.FoodLifetime == 0 || !g.hasFood {
		return
	}
	g.foodAge++
	if g.foodAge >= g.config.FoodLifetime {
		g.RelocateFood()
	}
}

func (g *Game) foodAhead() bool {
	return g.collisions.IsFoodAhead(g.grid, g.snake.PeekNextHead())
}

func (g *Game) setState(s types.State) {
	g.logger.Printf("session %s: %v -> %v after %d ticks, score %d, collision %v",
		g.id, g.state, s, g.ticks, g.score, g.collision)
	g.state = s
}

func (g *Game) ID() string {
	return g.id
}

func (g *Game) Config() Config {
	return g.config
}

func (g *Game) State() types.State {
	return g.state
}

func (g *Game) Score() int {
	return g.score
}

// Collision reports what ended the game, if anything did.
func (g *Game) Collision() types.CollisionType {
	return g.collision
}

func (g *Game) Ticks() int {
	return g.ticks
}

// Snake is for reading only.
func (g *Game) Snake() *entity.Snake {
	return g.snake
}

// Grid is for reading only.
func (g *Game) Grid() *types.Grid {
	return g.grid
}

func (g *Game) Food() (types.Food, bool) {
	return g.food, g.hasFood
}
