package pkg

// Action names a menu button
type Action string

const (
	ActionStart       Action = "Start Game"
	ActionResign             = "Resign"
	ActionDrawOffer          = "Offer Draw"
	ActionNewGame            = "New Game"
	ActionToggleMode         = "Mode"
	ActionTimeControl        = "Time"
)

// menuActions is the hit-test and drawing order of the menu buttons
var menuActions = []Action{
	ActionStart,
	ActionResign,
	ActionDrawOffer,
	ActionNewGame,
	ActionToggleMode,
	ActionTimeControl,
}

// menuSlots places each button on the menu grid. The gap after New Game
// separates game controls from settings.
var menuSlots = map[Action]int{
	ActionStart:       0,
	ActionResign:      1,
	ActionDrawOffer:   2,
	ActionNewGame:     3,
	ActionToggleMode:  5,
	ActionTimeControl: 6,
}

const (
	PopupResigned = "Player Resigned! Game Over."
	PopupDraw     = "Draw Offered! Game Over."
)
