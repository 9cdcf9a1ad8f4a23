package pkg

import (
	"github.com/notnil/chess"
	"github.com/qnkhuat/dragchess/pkg/gui"
)

const (
	numrows = 8
	numcols = 8
)

// Layout is the fixed geometry of the window. It is computed once from the
// window size and never changes afterwards.
type Layout struct {
	Window  gui.Rect
	Board   gui.Rect
	SquareW int
	SquareH int
	Labels  bool // draw rank and file labels around the board

	Menu       gui.Rect
	Buttons    map[Action]gui.Rect
	Options    []gui.Rect // dropdown rows below the time control button
	Status     gui.Rect
	WhiteClock gui.Rect
	BlackClock gui.Rect
	Moves      gui.Rect
	LineH      int
	Popup      gui.Rect
}

// menuMetrics describes the menu column in layout units
type menuMetrics struct {
	pad, step       int
	buttonW, button int
	optionH         int
	lineH           int
	popupW, popupH  int
}

// NewPixelLayout lays out a desktop window: a square board on the left and
// the menu column to its right.
func NewPixelLayout(width, height, boardSize int) Layout {
	sq := boardSize / numcols
	l := Layout{
		Window:  gui.NewRect(0, 0, width, height),
		Board:   gui.NewRect(0, 0, sq*numcols, sq*numrows),
		SquareW: sq,
		SquareH: sq,
	}
	l.Menu = gui.NewRect(boardSize, 0, width-boardSize, height)
	l.buildMenu(menuMetrics{
		pad: 20, step: 60,
		buttonW: 160, button: 40,
		optionH: 30,
		lineH:   22,
		popupW:  300, popupH: 100,
	})
	return l
}

// NewCellLayout lays out a terminal screen. A square is squareW cells wide
// and squareH cells tall, which keeps it roughly square on common fonts.
func NewCellLayout(width, height, squareW, squareH int) Layout {
	const left, top = 2, 1 // room for the rank labels
	l := Layout{
		Window:  gui.NewRect(0, 0, width, height),
		Board:   gui.NewRect(left, top, squareW*numcols, squareH*numrows),
		SquareW: squareW,
		SquareH: squareH,
		Labels:  true,
	}
	menuX := l.Board.X + l.Board.W + 2
	l.Menu = gui.NewRect(menuX, 0, width-menuX, height)
	l.buildMenu(menuMetrics{
		pad: 1, step: 2,
		buttonW: 22, button: 1,
		optionH: 1,
		lineH:   1,
		popupW:  36, popupH: 5,
	})
	return l
}

func (l *Layout) buildMenu(m menuMetrics) {
	x := l.Menu.X + m.pad
	l.Buttons = make(map[Action]gui.Rect, len(menuActions))
	for _, a := range menuActions {
		l.Buttons[a] = gui.NewRect(x, m.pad+menuSlots[a]*m.step, m.buttonW, m.button)
	}

	tcBtn := l.Buttons[ActionTimeControl]
	l.Options = make([]gui.Rect, len(TimeControlOptions))
	for i := range TimeControlOptions {
		l.Options[i] = gui.NewRect(tcBtn.X, tcBtn.Bottom()+i*m.optionH, tcBtn.W, m.optionH)
	}

	// Clocks sit below the space the open dropdown can cover
	y := tcBtn.Bottom() + len(TimeControlOptions)*m.optionH + m.lineH
	l.LineH = m.lineH
	l.Status = gui.NewRect(x, y, m.buttonW, m.lineH)
	l.WhiteClock = gui.NewRect(x, y+m.lineH, m.buttonW, m.lineH)
	l.BlackClock = gui.NewRect(x, y+2*m.lineH, m.buttonW, m.lineH)

	movesY := y + 4*m.lineH
	movesH := l.Window.H - movesY - m.pad
	if movesH < 0 {
		movesH = 0
	}
	l.Moves = gui.NewRect(x, movesY, m.buttonW, movesH)

	l.Popup = gui.NewRect((l.Window.W-m.popupW)/2, (l.Window.H-m.popupH)/2, m.popupW, m.popupH)
}

// InBoard reports whether the point is over the board
func (l Layout) InBoard(x, y int) bool {
	return l.Board.Contains(x, y)
}

// SquareAt maps a point to the board square under it. Row 0 on screen is
// rank 8.
func (l Layout) SquareAt(x, y int) (chess.Square, bool) {
	if !l.InBoard(x, y) {
		return chess.NoSquare, false
	}
	col := (x - l.Board.X) / l.SquareW
	row := (y - l.Board.Y) / l.SquareH
	return getSquare(chess.File(col), chess.Rank(numrows-row-1)), true
}

// SquareRect is the on-screen area of sq
func (l Layout) SquareRect(sq chess.Square) gui.Rect {
	col := int(sq.File())
	row := numrows - int(sq.Rank()) - 1
	return gui.NewRect(l.Board.X+col*l.SquareW, l.Board.Y+row*l.SquareH, l.SquareW, l.SquareH)
}

// ButtonAt returns the menu button under the point
func (l Layout) ButtonAt(x, y int) (Action, bool) {
	for _, a := range menuActions {
		if l.Buttons[a].Contains(x, y) {
			return a, true
		}
	}
	return "", false
}

// OptionAt returns the index of the dropdown row under the point
func (l Layout) OptionAt(x, y int) (int, bool) {
	for i, r := range l.Options {
		if r.Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}
