package pkg

import (
	"fmt"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/notnil/chess"
)

// Mode decides who answers Black's moves
type Mode int

const (
	ModeHumanVsHuman Mode = iota
	ModeHumanVsAI
)

func (m Mode) String() string {
	switch m {
	case ModeHumanVsHuman:
		return "Human vs Human"
	case ModeHumanVsAI:
		return "Human vs AI"
	default:
		return "Unknown"
	}
}

// Toggle flips between the two modes
func (m Mode) Toggle() Mode {
	if m == ModeHumanVsAI {
		return ModeHumanVsHuman
	}
	return ModeHumanVsAI
}

// ParseMode accepts "hvh", "hva" or the display names
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hvh", "human", "human vs human":
		return ModeHumanVsHuman, nil
	case "hva", "ai", "human vs ai":
		return ModeHumanVsAI, nil
	}
	return ModeHumanVsHuman, fmt.Errorf("unknown game mode %q", s)
}

// Players holds the display names of both sides
type Players struct {
	White string
	Black string
}

// NewPlayers fills empty names with generated ones
func NewPlayers(white, black string) Players {
	if white == "" {
		white = petname.Generate(2, "-")
	}
	if black == "" {
		black = petname.Generate(2, "-")
	}
	return Players{White: white, Black: black}
}

func (p Players) Name(c chess.Color) string {
	if c == chess.Black {
		return p.Black
	}
	return p.White
}

func colorName(c chess.Color) string {
	if c == chess.Black {
		return "Black"
	}
	return "White"
}
