package pkg

import "time"

// PopupDuration is how long a popup stays on screen
const PopupDuration = 3 * time.Second

// Popup is a transient message centered over the board
type Popup struct {
	Text  string
	Shown time.Time
}

func (p *Popup) Show(text string, now time.Time) {
	p.Text = text
	p.Shown = now
}

// Message returns the text while the popup is live and clears it once it
// has been up for longer than PopupDuration.
func (p *Popup) Message(now time.Time) string {
	if p.Text == "" {
		return ""
	}
	if now.Sub(p.Shown) > PopupDuration {
		p.Clear()
		return ""
	}
	return p.Text
}

func (p *Popup) Clear() {
	p.Text = ""
	p.Shown = time.Time{}
}
