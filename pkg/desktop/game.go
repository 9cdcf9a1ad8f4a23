package desktop

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/notnil/chess"
	"github.com/qnkhuat/dragchess/pkg"
	"github.com/qnkhuat/dragchess/pkg/event"
	"github.com/qnkhuat/dragchess/pkg/gui"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Window geometry in pixels
const (
	ScreenWidth  = 1000
	ScreenHeight = 800
	BoardSize    = 700
)

var face = basicfont.Face7x13

// NewLayout is the fixed desktop geometry
func NewLayout() pkg.Layout {
	return pkg.NewPixelLayout(ScreenWidth, ScreenHeight, BoardSize)
}

// Game implements ebiten.Game on top of the controller. Ebiten owns the
// frame loop here, so Update and Draw call into the controller directly.
type Game struct {
	C       *pkg.Controller
	Sprites *Sprites

	cursorX, cursorY int
}

func NewGame(c *pkg.Controller, sprites *Sprites) *Game {
	return &Game{C: c, Sprites: sprites}
}

func (g *Game) Update() error {
	x, y := ebiten.CursorPosition()
	if x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		g.C.HandleEvent(event.Move(x, y))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.C.HandleEvent(event.Down(x, y))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.C.HandleEvent(event.Up(x, y))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.C.HandleEvent(event.Event{Kind: event.Quit})
	}

	g.C.Update()
	if g.C.Quitting() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.C.Render(&canvas{dst: screen, sprites: g.Sprites})
}

func (g *Game) Layout(_, _ int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Run opens the window and blocks until it is closed
func Run(g *Game) error {
	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Chess Game")
	ebiten.SetTPS(pkg.FrameRate)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// canvas draws onto one ebiten frame
type canvas struct {
	dst     *ebiten.Image
	sprites *Sprites
}

func (cv *canvas) Clear(bg color.RGBA) {
	cv.dst.Fill(bg)
}

func (cv *canvas) FillRect(r gui.Rect, c color.RGBA) {
	vector.DrawFilledRect(cv.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func (cv *canvas) DrawText(r gui.Rect, s string, fg color.RGBA, align int) {
	width := font.MeasureString(face, s).Ceil()
	x := r.X + 6
	switch align {
	case gui.AlignCenter:
		x = r.X + (r.W-width)/2
	case gui.AlignRight:
		x = r.X + r.W - width - 6
	}
	m := face.Metrics()
	height := (m.Ascent + m.Descent).Ceil()
	y := r.Y + (r.H-height)/2 + m.Ascent.Ceil()
	text.Draw(cv.dst, s, face, x, y, fg)
}

func (cv *canvas) DrawPiece(r gui.Rect, p chess.Piece) {
	img, ok := cv.sprites.Get(p)
	if !ok {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.W)/float64(b.Dx()), float64(r.H)/float64(b.Dy()))
	op.GeoM.Translate(float64(r.X), float64(r.Y))
	cv.dst.DrawImage(img, op)
}
