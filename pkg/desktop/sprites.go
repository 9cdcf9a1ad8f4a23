package desktop

import (
	_ "image/png"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

// DefaultAssetDir holds the piece images
const DefaultAssetDir = "images"

var pieceFiles = map[chess.Piece]string{
	chess.WhitePawn:   "white_pawn.png",
	chess.WhiteRook:   "white_rook.png",
	chess.WhiteKnight: "white_knight.png",
	chess.WhiteBishop: "white_bishop.png",
	chess.WhiteQueen:  "white_queen.png",
	chess.WhiteKing:   "white_king.png",
	chess.BlackPawn:   "black_pawn.png",
	chess.BlackRook:   "black_rook.png",
	chess.BlackKnight: "black_knight.png",
	chess.BlackBishop: "black_bishop.png",
	chess.BlackQueen:  "black_queen.png",
	chess.BlackKing:   "black_king.png",
}

// Sprites are the piece images. A piece whose image failed to load is
// absent and simply not drawn.
type Sprites struct {
	images map[chess.Piece]*ebiten.Image
}

func LoadSprites(dir string, log zerolog.Logger) *Sprites {
	s := &Sprites{images: make(map[chess.Piece]*ebiten.Image, len(pieceFiles))}
	for p, name := range pieceFiles {
		path := filepath.Join(dir, name)
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			log.Warn().Err(err).Str("piece", p.String()).Str("path", path).Msg("error loading image")
			continue
		}
		s.images[p] = img
	}
	log.Info().Int("loaded", len(s.images)).Str("dir", dir).Msg("piece images")
	return s
}

func (s *Sprites) Get(p chess.Piece) (*ebiten.Image, bool) {
	img, ok := s.images[p]
	return img, ok
}
