package pkg

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeControl is a base budget per player plus a per-move increment
type TimeControl struct {
	Label     string
	Base      time.Duration
	Increment time.Duration
}

func (tc TimeControl) String() string {
	return tc.Label
}

// Minutes is the whole-minute part of the base time shown on the menu button
func (tc TimeControl) Minutes() int {
	return int(tc.Base / time.Minute)
}

// DefaultTimeControl is five minutes per side without increment
var DefaultTimeControl = TimeControl{Label: "5+0", Base: 5 * time.Minute}

// TimeControlOptions are the presets offered by the time control dropdown
var TimeControlOptions = []TimeControl{
	{Label: "30+10", Base: 30 * time.Minute, Increment: 10 * time.Second},
	{Label: "10+2", Base: 10 * time.Minute, Increment: 2 * time.Second},
	{Label: "5+2", Base: 5 * time.Minute, Increment: 2 * time.Second},
	{Label: "3+2", Base: 3 * time.Minute, Increment: 2 * time.Second},
	{Label: "1+2", Base: 1 * time.Minute, Increment: 2 * time.Second},
}

// ParseTimeControl reads "minutes+seconds" such as "10+2". A bare number is
// minutes without increment.
func ParseTimeControl(s string) (TimeControl, error) {
	s = strings.TrimSpace(s)
	base, inc := s, "0"
	if i := strings.IndexByte(s, '+'); i >= 0 {
		base, inc = s[:i], s[i+1:]
	}
	m, err := strconv.Atoi(base)
	if err != nil || m <= 0 {
		return TimeControl{}, fmt.Errorf("time control %q: bad minutes", s)
	}
	sec, err := strconv.Atoi(inc)
	if err != nil || sec < 0 {
		return TimeControl{}, fmt.Errorf("time control %q: bad increment", s)
	}
	return TimeControl{
		Label:     fmt.Sprintf("%d+%d", m, sec),
		Base:      time.Duration(m) * time.Minute,
		Increment: time.Duration(sec) * time.Second,
	}, nil
}
