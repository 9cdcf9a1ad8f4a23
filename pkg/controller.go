package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/notnil/chess"
	"github.com/qnkhuat/dragchess/pkg/event"
	"github.com/qnkhuat/dragchess/pkg/gui"
	"github.com/rs/zerolog"
)

const (
	FrameRate = 60
	// aiQueueSize bounds engine results waiting for the frame loop
	aiQueueSize = 4
)

// Options configures a Controller
type Options struct {
	Layout      Layout
	Theme       gui.Theme
	Players     Players
	Engine      Engine
	EngineName  string
	ThinkTime   time.Duration
	TimeControl TimeControl
	Mode        Mode
	Log         zerolog.Logger
	// Now defaults to time.Now
	Now func() time.Time
}

type aiResult struct {
	seq  int
	move *chess.Move
	err  error
}

// Controller owns every piece of UI and game state. All of it is touched
// from the frame loop only; the engine worker talks back over aiResults.
type Controller struct {
	Layout  Layout
	Theme   gui.Theme
	Players Players
	Log     zerolog.Logger

	game          *chess.Game
	selecting     bool
	lastSelection chess.Square
	dragging      chess.Piece
	dragOffX      int
	dragOffY      int
	pointerX      int
	pointerY      int

	started  bool   // a game was begun with Start
	running  bool   // clocks run once the first move is made
	result   string // set when the game ended outside the rules, like a flag fall
	lastTick time.Time

	white       *Clock
	black       *Clock
	timeControl TimeControl
	defaultTC   TimeControl

	mode         Mode
	defaultMode  Mode
	dropdownOpen bool
	popup        Popup

	engine     Engine
	engineName string
	think      time.Duration
	aiColor    chess.Color
	aiPending  bool
	aiCancel   context.CancelFunc
	aiResults  chan aiResult
	aiSeq      int

	now  func() time.Time
	quit bool
	done chan struct{}
}

func NewController(opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ThinkTime <= 0 {
		opts.ThinkTime = DefaultThinkTime
	}
	if opts.TimeControl.Base <= 0 {
		opts.TimeControl = DefaultTimeControl
	}
	if opts.EngineName == "" {
		opts.EngineName = "Computer"
	}
	if opts.Theme.Name == "" {
		opts.Theme = gui.ThemeBasic
	}
	if opts.Engine == nil && opts.Mode == ModeHumanVsAI {
		opts.Log.Warn().Msg("no engine, starting in human vs human")
		opts.Mode = ModeHumanVsHuman
	}

	c := &Controller{
		Layout:      opts.Layout,
		Theme:       opts.Theme,
		Players:     opts.Players,
		Log:         opts.Log,
		white:       NewClock(opts.TimeControl.Base, opts.TimeControl.Increment),
		black:       NewClock(opts.TimeControl.Base, opts.TimeControl.Increment),
		defaultTC:   opts.TimeControl,
		defaultMode: opts.Mode,
		engine:      opts.Engine,
		engineName:  opts.EngineName,
		think:       opts.ThinkTime,
		aiColor:     chess.Black,
		aiResults:   make(chan aiResult, aiQueueSize),
		now:         opts.Now,
		done:        make(chan struct{}),
	}
	c.reset()
	return c
}

// reset restores every field a New Game should clear. Rendering resources
// and the engine process are kept.
func (c *Controller) reset() {
	c.cancelAI()
	c.game = chess.NewGame()
	c.clearDrag()
	c.started = false
	c.running = false
	c.result = ""
	c.timeControl = c.defaultTC
	c.white.Set(c.defaultTC)
	c.white.Reset()
	c.black.Set(c.defaultTC)
	c.black.Reset()
	c.mode = c.defaultMode
	c.dropdownOpen = false
	c.popup.Clear()
}

func (c *Controller) clearDrag() {
	c.selecting = false
	c.lastSelection = chess.NoSquare
	c.dragging = chess.NoPiece
	c.dragOffX, c.dragOffY = 0, 0
}

// Run drives the frame loop on f until a quit event arrives or ctx is done
func (c *Controller) Run(ctx context.Context, f Frontend) error {
	tick := time.NewTicker(time.Second / FrameRate)
	defer tick.Stop()

	for {
		for _, ev := range f.PollEvents() {
			c.HandleEvent(ev)
		}
		if c.quit {
			c.Log.Info().Msg("quit requested")
			return nil
		}
		c.Update()
		c.Render(f)
		f.Show()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
}

// Quitting reports whether a quit event was received
func (c *Controller) Quitting() bool {
	return c.quit
}

// Close stops any engine request and shuts the engine down
func (c *Controller) Close() error {
	c.cancelAI()
	select {
	case <-c.done:
	default:
		close(c.done)
	}
	if c.engine == nil {
		return nil
	}
	return c.engine.Close()
}

func (c *Controller) HandleEvent(ev event.Event) {
	switch ev.Kind {
	case event.Quit:
		c.quit = true
	case event.PointerMove:
		c.pointerX, c.pointerY = ev.X, ev.Y
	case event.PointerDown:
		c.pointerX, c.pointerY = ev.X, ev.Y
		if c.Layout.InBoard(ev.X, ev.Y) {
			c.pickUp(ev.X, ev.Y)
		} else {
			c.clickMenu(ev.X, ev.Y)
		}
	case event.PointerUp:
		c.pointerX, c.pointerY = ev.X, ev.Y
		if c.selecting && c.Layout.InBoard(ev.X, ev.Y) {
			c.drop(ev.X, ev.Y)
		}
		c.clearDrag()
	}
}

// Update advances everything that depends on time: engine results, clocks
// and popup expiry.
func (c *Controller) Update() {
	c.drainAI()

	now := c.now()
	if c.started && c.running {
		elapsed := now.Sub(c.lastTick)
		c.lastTick = now
		turn := c.game.Position().Turn()
		clock := c.clock(turn)
		clock.Elapse(elapsed)
		if clock.Expired() {
			c.Log.Info().Str("side", colorName(turn)).Msg("flag fell")
			c.endGame(fmt.Sprintf("%s out of time", colorName(turn)))
		}
	}
	c.popup.Message(now)
}

func (c *Controller) clock(col chess.Color) *Clock {
	if col == chess.Black {
		return c.black
	}
	return c.white
}

func (c *Controller) gameOver() bool {
	return c.result != "" || c.game.Outcome() != chess.NoOutcome
}

func (c *Controller) pickUp(x, y int) {
	if c.aiPending || c.gameOver() {
		return
	}
	sq, ok := c.Layout.SquareAt(x, y)
	if !ok {
		return
	}
	c.selecting = true
	c.lastSelection = sq
	c.dragging = c.game.Position().Board().Piece(sq)
	r := c.Layout.SquareRect(sq)
	c.dragOffX, c.dragOffY = x-r.X, y-r.Y
}

func (c *Controller) drop(x, y int) {
	to, ok := c.Layout.SquareAt(x, y)
	if !ok || to == c.lastSelection {
		return
	}
	if c.mode == ModeHumanVsAI && c.game.Position().Turn() == c.aiColor {
		return
	}
	mv := c.legalMove(c.lastSelection, to)
	if mv == nil {
		c.Log.Debug().Str("from", c.lastSelection.String()).Str("to", to.String()).Msg("illegal move")
		return
	}
	if !c.applyMove(mv) {
		return
	}
	c.requestAIIfDue()
}

// legalMove finds the valid move from s1 to s2. Promotions always pick the
// queen.
func (c *Controller) legalMove(s1, s2 chess.Square) *chess.Move {
	var found *chess.Move
	for _, m := range c.game.ValidMoves() {
		if m.S1() != s1 || m.S2() != s2 {
			continue
		}
		if m.Promo() == chess.NoPieceType || m.Promo() == chess.Queen {
			return m
		}
		found = m
	}
	return found
}

// applyMove plays mv, charges the clocks and ends the game if the rules say
// so. It reports whether the move was played.
func (c *Controller) applyMove(mv *chess.Move) bool {
	mover := c.game.Position().Turn()
	if err := c.game.Move(mv); err != nil {
		c.Log.Error().Err(err).Str("move", mv.String()).Msg("move rejected")
		return false
	}
	c.Log.Info().Str("side", colorName(mover)).Str("move", mv.String()).Msg("move")

	if c.started {
		if !c.running {
			c.running = true
			c.lastTick = c.now()
			c.white.Resume()
			c.black.Resume()
		}
		c.clock(mover).Tick()
	}

	if c.gameOver() {
		c.endGame(fmt.Sprintf("%s (%s)", c.game.Outcome(), c.game.Method()))
	}
	return true
}

func (c *Controller) endGame(msg string) {
	c.cancelAI()
	c.started = false
	c.running = false
	c.result = msg
	c.white.Pause()
	c.black.Pause()
	c.popup.Show(msg, c.now())
	c.Log.Info().Str("result", msg).Msg("game over")
}

func (c *Controller) requestAIIfDue() {
	if c.mode != ModeHumanVsAI || c.aiPending || c.engine == nil || c.gameOver() {
		return
	}
	if c.game.Position().Turn() != c.aiColor {
		return
	}

	c.aiSeq++
	seq := c.aiSeq
	ctx, cancel := context.WithTimeout(context.Background(), c.think+engineGrace)
	c.aiCancel = cancel
	c.aiPending = true

	pos := c.game.Position()
	eng, think, results, done := c.engine, c.think, c.aiResults, c.done
	c.Log.Debug().Int("seq", seq).Str("fen", pos.String()).Msg("engine request")
	go func() {
		defer cancel()
		mv, err := eng.BestMove(ctx, pos, think)
		select {
		case results <- aiResult{seq: seq, move: mv, err: err}:
		case <-done:
		}
	}()
}

func (c *Controller) cancelAI() {
	if c.aiCancel != nil {
		c.aiCancel()
		c.aiCancel = nil
	}
	c.aiPending = false
	// Anything still in flight belongs to an older sequence number
	c.aiSeq++
}

func (c *Controller) drainAI() {
	for {
		select {
		case r := <-c.aiResults:
			c.handleAIResult(r)
		default:
			return
		}
	}
}

func (c *Controller) handleAIResult(r aiResult) {
	if !c.aiPending || r.seq != c.aiSeq {
		c.Log.Debug().Int("seq", r.seq).Msg("stale engine result dropped")
		return
	}
	c.aiPending = false
	if c.aiCancel != nil {
		c.aiCancel()
		c.aiCancel = nil
	}

	if r.err != nil {
		c.Log.Error().Err(r.err).Msg("engine failed")
		c.mode = ModeHumanVsHuman
		c.popup.Show("Engine error, switched to Human vs Human", c.now())
		return
	}
	c.applyMove(r.move)
}

func (c *Controller) clickMenu(x, y int) {
	if a, ok := c.Layout.ButtonAt(x, y); ok {
		c.doAction(a)
		return
	}
	if c.dropdownOpen {
		if i, ok := c.Layout.OptionAt(x, y); ok {
			c.selectTimeControl(i)
		}
	}
}

func (c *Controller) doAction(a Action) {
	switch a {
	case ActionStart:
		c.startGame()
	case ActionResign:
		c.resign()
	case ActionDrawOffer:
		c.offerDraw()
	case ActionNewGame:
		c.Log.Info().Msg("new game")
		c.reset()
	case ActionToggleMode:
		c.toggleMode()
	case ActionTimeControl:
		c.dropdownOpen = !c.dropdownOpen
	}
}

func (c *Controller) startGame() {
	c.cancelAI()
	c.game = chess.NewGame()
	c.clearDrag()
	c.started = true
	c.running = false
	c.result = ""
	c.white.Set(c.timeControl)
	c.white.Reset()
	c.black.Set(c.timeControl)
	c.black.Reset()
	c.Log.Info().Str("time", c.timeControl.Label).Str("mode", c.mode.String()).Msg("game started")
}

func (c *Controller) resign() {
	turn := c.game.Position().Turn()
	if !c.gameOver() {
		c.game.Resign(turn)
	}
	c.Log.Info().Str("side", colorName(turn)).Msg("player resigned")
	c.endGame(PopupResigned)
}

func (c *Controller) offerDraw() {
	if !c.gameOver() {
		if err := c.game.Draw(chess.DrawOffer); err != nil {
			c.Log.Error().Err(err).Msg("draw rejected by rules")
		}
	}
	c.Log.Info().Msg("draw offered")
	c.endGame(PopupDraw)
}

func (c *Controller) toggleMode() {
	if c.engine == nil && c.mode == ModeHumanVsHuman {
		c.Log.Warn().Msg("no engine configured")
		c.popup.Show("No engine available", c.now())
		return
	}
	c.mode = c.mode.Toggle()
	c.Log.Info().Str("mode", c.mode.String()).Msg("game mode changed")
	if c.mode == ModeHumanVsHuman {
		c.cancelAI()
		return
	}
	c.requestAIIfDue()
}

func (c *Controller) selectTimeControl(i int) {
	tc := TimeControlOptions[i]
	c.timeControl = tc
	c.white.Set(tc)
	c.black.Set(tc)
	c.dropdownOpen = false
	c.Log.Info().Str("time", tc.Label).Msg("time control changed")
}
