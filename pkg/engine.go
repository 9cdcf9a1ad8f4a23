package pkg

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/notnil/chess"
	"github.com/notnil/chess/uci"
	"github.com/rs/zerolog"
)

const (
	DefaultEnginePath = "stockfish"
	DefaultThinkTime  = 2 * time.Second
	// engineGrace is added to the think budget before a request is abandoned
	engineGrace = 3 * time.Second
)

var (
	ErrNoMove     = errors.New("engine: no move returned")
	ErrEngineDown = errors.New("engine: closed")
	ErrEngineHung = errors.New("engine: did not shut down in time")
)

// Engine picks a move for a position within a thinking budget
type Engine interface {
	BestMove(ctx context.Context, pos *chess.Position, think time.Duration) (*chess.Move, error)
	Close() error
}

// namedEngine is implemented by engines that can report who they are
type namedEngine interface {
	Name() string
}

// UCIEngine drives an external UCI binary. The process is started on the
// first request and kept for the lifetime of the engine.
type UCIEngine struct {
	Path string
	Log  zerolog.Logger
	// CloseTimeout bounds how long Close waits for the process to quit
	CloseTimeout time.Duration

	// searchMu serialises searches; mu guards the fields below and is never
	// held while talking to the process
	searchMu sync.Mutex
	mu       sync.Mutex
	eng      *uci.Engine
	name     string
	closed   bool
}

func NewUCIEngine(path string, log zerolog.Logger) *UCIEngine {
	if path == "" {
		path = DefaultEnginePath
	}
	return &UCIEngine{Path: path, Log: log, CloseTimeout: engineGrace}
}

// current returns the running process, starting one if needed. Must be
// called with searchMu held.
func (e *UCIEngine) current() (*uci.Engine, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrEngineDown
	}
	if e.eng != nil {
		eng := e.eng
		e.mu.Unlock()
		return eng, nil
	}
	e.mu.Unlock()

	eng, err := uci.New(e.Path)
	if err != nil {
		return nil, fmt.Errorf("starting %s: %w", e.Path, err)
	}
	if err := eng.Run(uci.CmdUCI, uci.CmdIsReady, uci.CmdUCINewGame); err != nil {
		e.closeProcess(eng)
		return nil, fmt.Errorf("initializing %s: %w", e.Path, err)
	}
	name := eng.ID()["name"]

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		go e.closeProcess(eng)
		return nil, ErrEngineDown
	}
	e.eng = eng
	e.name = name
	e.Log.Info().Str("path", e.Path).Str("name", name).Msg("engine started")
	return eng, nil
}

// Name is the engine's self-reported name, or the binary's name before it
// has started
func (e *UCIEngine) Name() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.name != "" {
		return e.name
	}
	return filepath.Base(e.Path)
}

func (e *UCIEngine) BestMove(ctx context.Context, pos *chess.Position, think time.Duration) (*chess.Move, error) {
	type result struct {
		move *chess.Move
		err  error
	}
	done := make(chan result, 1)
	go func() {
		mv, err := e.search(pos, think)
		done <- result{mv, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.move, r.err
	}
}

func (e *UCIEngine) search(pos *chess.Position, think time.Duration) (*chess.Move, error) {
	e.searchMu.Lock()
	defer e.searchMu.Unlock()
	eng, err := e.current()
	if err != nil {
		return nil, err
	}

	started := time.Now()
	cmdPos := uci.CmdPosition{Position: pos}
	cmdGo := uci.CmdGo{MoveTime: think}
	if err := eng.Run(cmdPos, cmdGo); err != nil {
		// The process may be gone; start a fresh one next time
		e.mu.Lock()
		if e.eng == eng {
			e.eng = nil
		}
		e.mu.Unlock()
		e.closeProcess(eng)
		return nil, fmt.Errorf("engine search: %w", err)
	}

	mv := eng.SearchResults().BestMove
	if mv == nil {
		return nil, ErrNoMove
	}
	e.Log.Debug().Str("move", mv.String()).Dur("took", time.Since(started)).Msg("engine move")
	return mv, nil
}

// closeProcess asks the process to quit and gives up after CloseTimeout.
// A process stuck in a search may not answer at all.
func (e *UCIEngine) closeProcess(eng *uci.Engine) error {
	timeout := e.CloseTimeout
	if timeout <= 0 {
		timeout = engineGrace
	}
	done := make(chan error, 1)
	go func() {
		done <- eng.Close()
	}()
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		e.Log.Warn().Str("path", e.Path).Msg("engine did not quit")
		return ErrEngineHung
	}
}

// Close shuts the process down without waiting for a running search
func (e *UCIEngine) Close() error {
	e.mu.Lock()
	e.closed = true
	eng := e.eng
	e.eng = nil
	e.mu.Unlock()
	if eng == nil {
		return nil
	}
	return e.closeProcess(eng)
}
