package gui

import (
	"errors"
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name           string
	Background     color.RGBA
	SquareLight    color.RGBA
	SquareDark     color.RGBA
	SquareHigh     color.RGBA
	SquareSelect   color.RGBA
	White          color.RGBA
	Black          color.RGBA
	Rank           color.RGBA
	File           color.RGBA
	Menu           color.RGBA
	Button         color.RGBA
	ButtonDisabled color.RGBA
	Dropdown       color.RGBA
	Text           color.RGBA
	Popup          color.RGBA
	Clock          color.RGBA
	ClockLow       color.RGBA
	MoveBox        color.RGBA
}

// ThemeHex is the config file form of a Theme
type ThemeHex struct {
	Name           string `json:"name"`
	Background     string `json:"background"`
	SquareLight    string `json:"squareLight"`
	SquareDark     string `json:"squareDark"`
	SquareHigh     string `json:"squareHigh"`
	SquareSelect   string `json:"squareSelect"`
	White          string `json:"white"`
	Black          string `json:"black"`
	Rank           string `json:"rank"`
	File           string `json:"file"`
	Menu           string `json:"menu"`
	Button         string `json:"button"`
	ButtonDisabled string `json:"buttonDisabled"`
	Dropdown       string `json:"dropdown"`
	Text           string `json:"text"`
	Popup          string `json:"popup"`
	Clock          string `json:"clock"`
	ClockLow       string `json:"clockLow"`
	MoveBox        string `json:"moveBox"`
}

func fmtHex(c color.RGBA) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

// parseHex converts "#rrggbb" into an opaque RGBA. An empty string keeps
// the fallback so partial themes inherit from ThemeBasic.
func parseHex(s string, fallback color.RGBA) (color.RGBA, error) {
	if s == "" {
		return fallback, nil
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return fallback, fmt.Errorf("theme: bad color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.Background),
		fmtHex(t.SquareLight),
		fmtHex(t.SquareDark),
		fmtHex(t.SquareHigh),
		fmtHex(t.SquareSelect),
		fmtHex(t.White),
		fmtHex(t.Black),
		fmtHex(t.Rank),
		fmtHex(t.File),
		fmtHex(t.Menu),
		fmtHex(t.Button),
		fmtHex(t.ButtonDisabled),
		fmtHex(t.Dropdown),
		fmtHex(t.Text),
		fmtHex(t.Popup),
		fmtHex(t.Clock),
		fmtHex(t.ClockLow),
		fmtHex(t.MoveBox),
	}
}

// Theme converts a ThemeHex to a Theme. Missing colors come from ThemeBasic,
// except a missing disabled button color, which is a shade of the button.
func (t ThemeHex) Theme() (Theme, error) {
	base := ThemeBasic
	out := Theme{Name: t.Name}
	fields := []struct {
		src string
		def color.RGBA
		dst *color.RGBA
	}{
		{t.Background, base.Background, &out.Background},
		{t.SquareLight, base.SquareLight, &out.SquareLight},
		{t.SquareDark, base.SquareDark, &out.SquareDark},
		{t.SquareHigh, base.SquareHigh, &out.SquareHigh},
		{t.SquareSelect, base.SquareSelect, &out.SquareSelect},
		{t.White, base.White, &out.White},
		{t.Black, base.Black, &out.Black},
		{t.Rank, base.Rank, &out.Rank},
		{t.File, base.File, &out.File},
		{t.Menu, base.Menu, &out.Menu},
		{t.Button, base.Button, &out.Button},
		{t.ButtonDisabled, base.ButtonDisabled, &out.ButtonDisabled},
		{t.Dropdown, base.Dropdown, &out.Dropdown},
		{t.Text, base.Text, &out.Text},
		{t.Popup, base.Popup, &out.Popup},
		{t.Clock, base.Clock, &out.Clock},
		{t.ClockLow, base.ClockLow, &out.ClockLow},
		{t.MoveBox, base.MoveBox, &out.MoveBox},
	}
	for _, f := range fields {
		c, err := parseHex(f.src, f.def)
		if err != nil {
			return Theme{}, err
		}
		*f.dst = c
	}
	if t.ButtonDisabled == "" && t.Button != "" {
		out.ButtonDisabled = Shade(out.Button, disabledShade)
	}
	return out, nil
}

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument. Built-in themes are
// consulted after the provided ones.
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme()
		}
	}
	for _, t := range BuiltinThemes {
		if t.Name == want {
			return t, nil
		}
	}

	return Theme{}, errors.New("theme: no theme found")
}

// Shade darkens c by amount in [0,1], blending in Lab space
func Shade(c color.RGBA, amount float64) color.RGBA {
	cf, _ := colorful.MakeColor(c)
	r, g, b := cf.BlendLab(colorful.Color{}, amount).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: c.A}
}

// disabledShade darkens a button to show it cannot be pressed
const disabledShade = 0.25

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	Name:           "basic",
	Background:     rgb(255, 255, 255),
	SquareLight:    rgb(245, 222, 179),
	SquareDark:     rgb(139, 69, 19),
	SquareHigh:     rgb(205, 210, 106),
	SquareSelect:   rgb(246, 246, 105),
	White:          rgb(255, 255, 255),
	Black:          rgb(0, 0, 0),
	Rank:           rgb(158, 158, 158),
	File:           rgb(158, 158, 158),
	Menu:           rgb(220, 220, 220),
	Button:         rgb(200, 200, 200),
	ButtonDisabled: rgb(150, 150, 150),
	Dropdown:       rgb(200, 200, 200),
	Text:           rgb(0, 0, 0),
	Popup:          rgb(220, 220, 220),
	Clock:          rgb(0, 0, 0),
	ClockLow:       rgb(215, 0, 0),
	MoveBox:        rgb(48, 48, 48),
}

// ThemeSlate trades the wooden board for a cooler palette
var ThemeSlate = Theme{
	Name:           "slate",
	Background:     rgb(38, 36, 33),
	SquareLight:    rgb(222, 227, 230),
	SquareDark:     rgb(140, 162, 173),
	SquareHigh:     rgb(155, 199, 0),
	SquareSelect:   rgb(100, 180, 220),
	White:          rgb(250, 250, 250),
	Black:          rgb(20, 20, 20),
	Rank:           rgb(188, 188, 188),
	File:           rgb(188, 188, 188),
	Menu:           rgb(48, 46, 43),
	Button:         rgb(90, 90, 90),
	ButtonDisabled: rgb(60, 60, 60),
	Dropdown:       rgb(70, 70, 70),
	Text:           rgb(235, 235, 235),
	Popup:          rgb(70, 70, 70),
	Clock:          rgb(235, 235, 235),
	ClockLow:       rgb(255, 95, 95),
	MoveBox:        rgb(200, 200, 200),
}

var BuiltinThemes = []Theme{ThemeBasic, ThemeSlate}
