package pkg

import (
	"fmt"
	"image/color"
	"time"

	"github.com/notnil/chess"
	"github.com/qnkhuat/dragchess/pkg/gui"
)

// lowTime turns the clock red
const lowTime = 10 * time.Second

// Render draws the whole frame
func (c *Controller) Render(cv Canvas) {
	now := c.now()
	cv.Clear(c.Theme.Background)
	c.drawBoard(cv)
	c.drawPieces(cv)
	c.drawMenu(cv, now)
}

// lastMove returns a boolean representing whether sq was part of the
// last move made
func lastMove(game *chess.Game, sq chess.Square) bool {
	moves := game.Moves()
	if len(moves) > 0 {
		lastMove := moves[len(moves)-1]
		if lastMove.S1() == sq || lastMove.S2() == sq {
			return true
		}
	}
	return false
}

// squareBg returns the theme's color corresponding to the square
func (c *Controller) squareBg(sq chess.Square) color.RGBA {
	t := c.Theme
	if c.selecting && sq == c.lastSelection && c.dragging != chess.NoPiece {
		return t.SquareSelect
	}
	if lastMove(c.game, sq) {
		return t.SquareHigh
	}
	if isLightSquare(sq) {
		return t.SquareLight
	}
	return t.SquareDark
}

func (c *Controller) drawBoard(cv Canvas) {
	l := c.Layout
	for r := numrows - 1; r >= 0; r-- {
		for f := 0; f < numcols; f++ {
			sq := getSquare(chess.File(f), chess.Rank(r))
			cv.FillRect(l.SquareRect(sq), c.squareBg(sq))
		}
	}
	if !l.Labels {
		return
	}

	// Ranks to the left, files underneath
	for r := 0; r < numrows; r++ {
		sq := l.SquareRect(getSquare(chess.FileA, chess.Rank(r)))
		_, cy := sq.Center()
		cv.DrawText(gui.NewRect(l.Board.X-2, cy, 1, 1), chess.Rank(r).String(), c.Theme.Rank, gui.AlignLeft)
	}
	for f := 0; f < numcols; f++ {
		sq := l.SquareRect(getSquare(chess.File(f), chess.Rank1))
		cv.DrawText(gui.NewRect(sq.X, l.Board.Bottom(), sq.W, 1), chess.File(f).String(), c.Theme.File, gui.AlignCenter)
	}
}

func (c *Controller) drawPieces(cv Canvas) {
	board := c.game.Position().Board()
	for sq, p := range board.SquareMap() {
		cv.DrawPiece(c.Layout.SquareRect(sq), p)
	}

	if c.selecting && c.dragging != chess.NoPiece {
		r := gui.NewRect(c.pointerX-c.dragOffX, c.pointerY-c.dragOffY, c.Layout.SquareW, c.Layout.SquareH)
		cv.DrawPiece(r, c.dragging)
	}
}

func (c *Controller) drawButton(cv Canvas, r gui.Rect, text string, enabled bool) {
	bg := c.Theme.Button
	if !enabled {
		bg = c.Theme.ButtonDisabled
	}
	cv.FillRect(r, bg)
	cv.DrawText(r, text, c.Theme.Text, gui.AlignCenter)
}

// buttonLabel is what a button shows and whether it can be pressed now
func (c *Controller) buttonLabel(a Action) (string, bool) {
	switch a {
	case ActionStart:
		return string(ActionStart), !c.started
	case ActionResign, ActionDrawOffer:
		return string(a), c.started
	case ActionToggleMode:
		return c.mode.String(), true
	case ActionTimeControl:
		return fmt.Sprintf("Time: %d", c.timeControl.Minutes()), true
	default:
		return string(a), true
	}
}

func (c *Controller) drawMenu(cv Canvas, now time.Time) {
	l := c.Layout
	cv.FillRect(l.Menu, c.Theme.Menu)
	for _, a := range menuActions {
		text, enabled := c.buttonLabel(a)
		c.drawButton(cv, l.Buttons[a], text, enabled)
	}

	cv.DrawText(l.Status, c.statusText(), c.Theme.Text, gui.AlignLeft)
	c.drawClock(cv, l.WhiteClock, chess.White)
	c.drawClock(cv, l.BlackClock, chess.Black)
	c.drawMoves(cv)

	if c.dropdownOpen {
		c.drawTimeDropdown(cv)
	}
	if msg := c.popup.Message(now); msg != "" {
		cv.FillRect(l.Popup, c.Theme.Popup)
		cv.DrawText(l.Popup, msg, c.Theme.Text, gui.AlignCenter)
	}
}

func (c *Controller) statusText() string {
	switch {
	case c.aiPending:
		return "AI thinking..."
	case c.game.Outcome() != chess.NoOutcome:
		return fmt.Sprintf("%v (%v)", c.game.Outcome(), c.game.Method())
	case c.result != "":
		return c.result
	case c.game.Position().Turn() == chess.Black:
		return "Black to Move"
	default:
		return "White to Move"
	}
}

func (c *Controller) playerName(col chess.Color) string {
	if c.mode == ModeHumanVsAI && col == c.aiColor {
		if n, ok := c.engine.(namedEngine); ok {
			if name := n.Name(); name != "" {
				return name
			}
		}
		return c.engineName
	}
	return c.Players.Name(col)
}

func (c *Controller) drawClock(cv Canvas, r gui.Rect, col chess.Color) {
	cl := c.clock(col)
	fg := c.Theme.Clock
	if cl.Remaining < lowTime {
		fg = c.Theme.ClockLow
	}
	text := fmt.Sprintf("%s %s: %s", colorName(col), c.playerName(col), cl)
	cv.DrawText(r, text, fg, gui.AlignLeft)
}

func (c *Controller) drawTimeDropdown(cv Canvas) {
	for i, tc := range TimeControlOptions {
		r := c.Layout.Options[i]
		cv.FillRect(r, c.Theme.Dropdown)
		cv.DrawText(r.Offset(1, 0), tc.Label, c.Theme.Text, gui.AlignLeft)
	}
}

// gameMove is used to store intermediate data in moveRows
type gameMove = struct {
	index string
	white string
	black string
}

// moveRows returns the last n move pairs in algebraic notation
func moveRows(game *chess.Game, n int) []gameMove {
	positions := game.Positions()
	gameMoves := make([]gameMove, 0)
	var gm gameMove

	for i, move := range game.Moves() {
		pos := positions[i]
		txt := chess.AlgebraicNotation{}.Encode(pos, move)
		// On even indices, write the white move / index
		if i%2 == 0 {
			gm = gameMove{}
			gm.index = fmt.Sprintf("%v.", (i/2)+1)
			gm.white = txt
		} else {
			gm.black = txt
			gameMoves = append(gameMoves, gm)
		}
	}
	// A trailing white move has no pair yet
	if len(game.Moves())%2 == 1 {
		gameMoves = append(gameMoves, gm)
	}

	if len(gameMoves) > n {
		gameMoves = gameMoves[len(gameMoves)-n:]
	}
	return gameMoves
}

func (c *Controller) drawMoves(cv Canvas) {
	l := c.Layout
	if l.Moves.Empty() || l.LineH <= 0 {
		return
	}
	rows := moveRows(c.game, l.Moves.H/l.LineH)
	for i, m := range rows {
		r := gui.NewRect(l.Moves.X, l.Moves.Y+i*l.LineH, l.Moves.W, l.LineH)
		cv.DrawText(r, fmt.Sprintf("%-4v %-7v %-7v", m.index, m.white, m.black), c.Theme.MoveBox, gui.AlignLeft)
	}
}
