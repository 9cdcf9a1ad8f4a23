package gui

import (
	"errors"
	"fmt"
	"image/color"
	"sync"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/qnkhuat/dragchess/pkg/event"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
)

const (
	// Terminal cells are about twice as tall as wide
	SquareCols = 6
	SquareRows = 3

	MinCols = 76
	MinRows = 26

	EventQueueSize = 64
)

var ErrScreenTooSmall = errors.New("terminal too small")

// Terminal is a tcell screen used as a frame loop frontend. Events are
// pumped by a goroutine into a buffered channel and drained once per frame.
type Terminal struct {
	S     tcell.Screen
	Theme Theme
	Log   zerolog.Logger

	events    chan tcell.Event
	buttons   tcell.ButtonMask
	quit      chan struct{}
	closeOnce sync.Once
}

// NewTerminal takes over the terminal
func NewTerminal(theme Theme, log zerolog.Logger) (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return NewTerminalScreen(s, theme, log)
}

// NewTerminalScreen initialises s and starts polling its events
func NewTerminalScreen(s tcell.Screen, theme Theme, log zerolog.Logger) (*Terminal, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	s.EnableMouse()
	s.HideCursor()

	t := &Terminal{
		S:      s,
		Theme:  theme,
		Log:    log,
		events: make(chan tcell.Event, EventQueueSize),
		quit:   make(chan struct{}),
	}
	go t.pump()
	return t, nil
}

func (t *Terminal) pump() {
	for {
		ev := t.S.PollEvent()
		if ev == nil { // screen finalized
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

// Size reports the screen size and whether it fits the board and menu
func (t *Terminal) Size() (int, int, error) {
	w, h := t.S.Size()
	if w < MinCols || h < MinRows {
		return w, h, fmt.Errorf("%w: need %dx%d, have %dx%d", ErrScreenTooSmall, MinCols, MinRows, w, h)
	}
	return w, h, nil
}

func (t *Terminal) Close() {
	t.closeOnce.Do(func() {
		close(t.quit)
		t.S.Fini()
	})
}

func (t *Terminal) PollEvents() []event.Event {
	var out []event.Event
	for {
		select {
		case ev := <-t.events:
			if e, ok := t.translate(ev); ok {
				out = append(out, e)
			}
		default:
			return out
		}
	}
}

// translate turns a tcell event into zero or one input events. Button 1
// mask transitions become pointer down and up.
func (t *Terminal) translate(ev tcell.Event) (event.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return event.Event{Kind: event.Quit}, true
		case tcell.KeyRune:
			if ev.Rune() == 'q' || ev.Rune() == 'Q' {
				return event.Event{Kind: event.Quit}, true
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		prev := t.buttons
		t.buttons = ev.Buttons()
		pressed := t.buttons&tcell.Button1 != 0
		wasPressed := prev&tcell.Button1 != 0
		switch {
		case pressed && !wasPressed:
			return event.Down(x, y), true
		case !pressed && wasPressed:
			return event.Up(x, y), true
		default:
			return event.Move(x, y), true
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		t.Log.Debug().Int("w", w).Int("h", h).Msg("screen resized")
		t.S.Sync()
	}
	return event.Event{}, false
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (t *Terminal) Clear(bg color.RGBA) {
	t.S.Fill(' ', tcell.StyleDefault.Background(toTcell(bg)))
}

func (t *Terminal) FillRect(r Rect, c color.RGBA) {
	style := tcell.StyleDefault.Background(toTcell(c))
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			t.S.SetContent(x, y, ' ', nil, style)
		}
	}
}

// DrawText prints a single line vertically centered in r. The background
// already on screen is kept.
func (t *Terminal) DrawText(r Rect, text string, fg color.RGBA, align int) {
	_, y := r.Center()
	if r.H <= 1 {
		y = r.Y
	}
	tview.Print(t.S, tview.Escape(text), r.X, y, r.W, tviewAlign(align), toTcell(fg))
}

func tviewAlign(align int) int {
	switch align {
	case AlignCenter:
		return tview.AlignCenter
	case AlignRight:
		return tview.AlignRight
	default:
		return tview.AlignLeft
	}
}

// DrawPiece puts the piece glyph in the middle of r on the existing
// background
func (t *Terminal) DrawPiece(r Rect, p chess.Piece) {
	if p == chess.NoPiece {
		return
	}
	x, y := r.Center()
	_, _, style, _ := t.S.GetContent(x, y)
	_, bg, _ := style.Decompose()
	piece, _ := utf8.DecodeRuneInString(glyphs[p.Type()].String())
	t.S.SetContent(x, y, piece, nil, stylePiece(p, bg, t.Theme))
}

// glyphs draws both sides with the filled symbols, which read better on
// either square color. The theme tells the sides apart.
var glyphs = map[chess.PieceType]chess.Piece{
	chess.King:   chess.BlackKing,
	chess.Queen:  chess.BlackQueen,
	chess.Rook:   chess.BlackRook,
	chess.Bishop: chess.BlackBishop,
	chess.Knight: chess.BlackKnight,
	chess.Pawn:   chess.BlackPawn,
}

// stylePiece applies the theme's style to a piece based upon its color
func stylePiece(p chess.Piece, sqBg tcell.Color, th Theme) tcell.Style {
	pieceStyle := tcell.StyleDefault.Background(sqBg).Bold(true)

	if p.Color() == chess.White {
		return pieceStyle.Foreground(toTcell(th.White))
	}
	return pieceStyle.Foreground(toTcell(th.Black))
}

func (t *Terminal) Show() {
	t.S.Show()
}
