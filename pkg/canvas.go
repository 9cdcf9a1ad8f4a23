package pkg

import (
	"image/color"

	"github.com/notnil/chess"
	"github.com/qnkhuat/dragchess/pkg/event"
	"github.com/qnkhuat/dragchess/pkg/gui"
)

// Canvas is the drawing surface a frontend hands to the controller. All
// coordinates are layout units.
type Canvas interface {
	Clear(bg color.RGBA)
	FillRect(r gui.Rect, c color.RGBA)
	DrawText(r gui.Rect, text string, fg color.RGBA, align int)
	// DrawPiece draws p inside r on top of whatever is already there
	DrawPiece(r gui.Rect, p chess.Piece)
}

// Frontend is a toolkit the controller can run its own frame loop on
type Frontend interface {
	Canvas
	// PollEvents returns the input queued since the last call without
	// blocking
	PollEvents() []event.Event
	// Show presents the frame
	Show()
}
