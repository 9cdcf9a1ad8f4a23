package event

// Kind identifies what happened on the input device.
type Kind int

const (
	KindUnknown Kind = iota
	PointerDown
	PointerUp
	PointerMove
	Quit
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "PointerDown"
	case PointerUp:
		return "PointerUp"
	case PointerMove:
		return "PointerMove"
	case Quit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Event is a toolkit-neutral input event. X and Y are in layout units:
// pixels on the desktop, cells in the terminal.
type Event struct {
	Kind Kind
	X, Y int
}

func Down(x, y int) Event { return Event{Kind: PointerDown, X: x, Y: y} }

func Up(x, y int) Event { return Event{Kind: PointerUp, X: x, Y: y} }

func Move(x, y int) Event { return Event{Kind: PointerMove, X: x, Y: y} }
