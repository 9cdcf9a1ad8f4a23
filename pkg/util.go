package pkg

import (
	"fmt"
	"io"
	"os"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

func getSquare(f chess.File, r chess.Rank) chess.Square {
	return chess.Square((int(r) * 8) + int(f))
}

// isLightSquare follows the board convention that a1 is dark
func isLightSquare(sq chess.Square) bool {
	return (int(sq.File())+int(sq.Rank()))%2 == 1
}

// InitLog opens dest for appending and returns a logger tagged with the
// component name. The terminal belongs to the UI, so logs go to a file.
func InitLog(dest, component string) (zerolog.Logger, io.Closer, error) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("error opening log file: %w", err)
	}
	logger := zerolog.New(f).With().
		Timestamp().
		Str("component", component).
		Logger()
	return logger, f, nil
}
