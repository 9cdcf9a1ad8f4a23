package pkg

import (
	"image/color"
	"strings"
	"testing"

	"github.com/notnil/chess"
	"github.com/qnkhuat/dragchess/pkg/event"
	"github.com/qnkhuat/dragchess/pkg/gui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type drawnText struct {
	r    gui.Rect
	text string
	fg   color.RGBA
}

type drawnPiece struct {
	r gui.Rect
	p chess.Piece
}

// recordingCanvas keeps every draw call of a frame
type recordingCanvas struct {
	fills  map[gui.Rect]color.RGBA
	texts  []drawnText
	pieces []drawnPiece
}

func (rc *recordingCanvas) Clear(bg color.RGBA) {
	rc.fills = map[gui.Rect]color.RGBA{}
	rc.texts = nil
	rc.pieces = nil
}

func (rc *recordingCanvas) FillRect(r gui.Rect, c color.RGBA) {
	if rc.fills == nil {
		rc.fills = map[gui.Rect]color.RGBA{}
	}
	rc.fills[r] = c
}

func (rc *recordingCanvas) DrawText(r gui.Rect, text string, fg color.RGBA, align int) {
	rc.texts = append(rc.texts, drawnText{r, text, fg})
}

func (rc *recordingCanvas) DrawPiece(r gui.Rect, p chess.Piece) {
	rc.pieces = append(rc.pieces, drawnPiece{r, p})
}

func (rc *recordingCanvas) hasText(s string) bool {
	for _, t := range rc.texts {
		if strings.Contains(t.text, s) {
			return true
		}
	}
	return false
}

func TestRenderMenu(t *testing.T) {
	c, _ := newTestController(nil)
	rc := &recordingCanvas{}

	c.Render(rc)

	for _, s := range []string{"Start Game", "Resign", "Offer Draw", "New Game", "Human vs Human", "Time: 5", "White to Move", "White alice: 5:00", "Black bob: 5:00"} {
		assert.True(t, rc.hasText(s), "missing %q", s)
	}
	assert.Len(t, rc.pieces, 32)
	assert.Equal(t, c.Theme.Button, rc.fills[c.Layout.Buttons[ActionStart]])
	assert.Equal(t, c.Theme.ButtonDisabled, rc.fills[c.Layout.Buttons[ActionResign]])
	assert.False(t, rc.hasText("30+10"))
}

func TestRenderButtonsAfterStart(t *testing.T) {
	c, _ := newTestController(nil)
	click(c, ActionStart)
	rc := &recordingCanvas{}

	c.Render(rc)

	assert.Equal(t, c.Theme.ButtonDisabled, rc.fills[c.Layout.Buttons[ActionStart]])
	assert.Equal(t, c.Theme.Button, rc.fills[c.Layout.Buttons[ActionResign]])
	assert.Equal(t, c.Theme.Button, rc.fills[c.Layout.Buttons[ActionDrawOffer]])
}

func TestRenderDropdownAndPopup(t *testing.T) {
	c, _ := newTestController(&fakeEngine{})
	click(c, ActionTimeControl)
	click(c, ActionToggleMode)
	click(c, ActionStart)
	click(c, ActionResign)
	rc := &recordingCanvas{}

	c.Render(rc)

	for _, tc := range TimeControlOptions {
		assert.True(t, rc.hasText(tc.Label), "missing %q", tc.Label)
	}
	assert.True(t, rc.hasText(PopupResigned))
	assert.True(t, rc.hasText("Human vs AI"))
	assert.True(t, rc.hasText("Black Computer: 5:00"))
	assert.Equal(t, c.Theme.Popup, rc.fills[c.Layout.Popup])
}

type namedFakeEngine struct {
	fakeEngine
}

func (e *namedFakeEngine) Name() string { return "Stockfish 16" }

func TestRenderEngineName(t *testing.T) {
	c, _ := newTestController(&namedFakeEngine{})
	click(c, ActionToggleMode)
	rc := &recordingCanvas{}

	c.Render(rc)

	assert.True(t, rc.hasText("Black Stockfish 16: 5:00"))
	assert.True(t, rc.hasText("White alice: 5:00"))
}

func TestRenderDraggedPieceFollowsPointer(t *testing.T) {
	c, _ := newTestController(nil)
	from := c.Layout.SquareRect(square("g1"))
	c.HandleEvent(event.Down(from.X+10, from.Y+5))
	c.HandleEvent(event.Move(400, 300))
	rc := &recordingCanvas{}

	c.Render(rc)

	require.Len(t, rc.pieces, 33)
	last := rc.pieces[len(rc.pieces)-1]
	assert.Equal(t, chess.WhiteKnight, last.p)
	assert.Equal(t, gui.NewRect(390, 295, c.Layout.SquareW, c.Layout.SquareH), last.r)
	assert.Equal(t, c.Theme.SquareSelect, rc.fills[from])
}

func TestRenderHighlightsLastMove(t *testing.T) {
	c, _ := newTestController(nil)
	drag(c, "e2", "e4")
	rc := &recordingCanvas{}

	c.Render(rc)

	assert.Equal(t, c.Theme.SquareHigh, rc.fills[c.Layout.SquareRect(square("e2"))])
	assert.Equal(t, c.Theme.SquareHigh, rc.fills[c.Layout.SquareRect(square("e4"))])
	assert.Equal(t, c.Theme.SquareDark, rc.fills[c.Layout.SquareRect(square("a1"))])
	assert.True(t, rc.hasText("Black to Move"))
	assert.True(t, rc.hasText("1.   e4"))
}

func TestRenderCellLayoutLabels(t *testing.T) {
	c, _ := newTestController(nil)
	c.Layout = NewCellLayout(80, 30, 6, 3)
	rc := &recordingCanvas{}

	c.Render(rc)

	for _, s := range []string{"1", "8", "a", "h"} {
		assert.True(t, rc.hasText(s))
	}
}

func TestMoveRows(t *testing.T) {
	g := chess.NewGame()
	for _, mv := range []string{"e4", "e5", "Nf3"} {
		require.NoError(t, g.MoveStr(mv))
	}

	rows := moveRows(g, 10)
	require.Len(t, rows, 2)
	assert.Equal(t, gameMove{index: "1.", white: "e4", black: "e5"}, rows[0])
	assert.Equal(t, gameMove{index: "2.", white: "Nf3"}, rows[1])

	rows = moveRows(g, 1)
	require.Len(t, rows, 1)
	assert.Equal(t, "2.", rows[0].index)
}
