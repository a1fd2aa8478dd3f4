package render

import "github.com/ngmaloney/tidewatch/internal/models"

// Theme is the persisted display preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme maps unknown values to the dark default.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// Toggle flips between dark and light.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Palette is the set of colors a surface draws with. Values are "#rrggbb".
type Palette struct {
	Background string
	Foreground string
	Muted      string
	Grid       string
	Curve      string
	Marker     string
	NowLine    string
	Track      string

	RisingStart  string
	RisingEnd    string
	FallingStart string
	FallingEnd   string
}

var palettes = map[Theme]Palette{
	ThemeDark: {
		Background:   "#0b1622",
		Foreground:   "#e6f1ff",
		Muted:        "#6c7a89",
		Grid:         "#1f2f40",
		Curve:        "#00bfff",
		Marker:       "#ffd93d",
		NowLine:      "#ff6b6b",
		Track:        "#1a2633",
		RisingStart:  "#1e90ff",
		RisingEnd:    "#00e5ff",
		FallingStart: "#ff8c42",
		FallingEnd:   "#ffd93d",
	},
	ThemeLight: {
		Background:   "#f5f9fc",
		Foreground:   "#102030",
		Muted:        "#6c757d",
		Grid:         "#d5dee8",
		Curve:        "#0077b6",
		Marker:       "#e07a00",
		NowLine:      "#d62828",
		Track:        "#e1e8ef",
		RisingStart:  "#0077b6",
		RisingEnd:    "#00b4d8",
		FallingStart: "#e85d04",
		FallingEnd:   "#faa307",
	},
}

// PaletteFor returns the palette of theme.
func PaletteFor(theme Theme) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[ThemeDark]
}

// DirectionColors returns the gradient endpoints for a tide direction.
func (p Palette) DirectionColors(rising bool) (start, end string) {
	if rising {
		return p.RisingStart, p.RisingEnd
	}
	return p.FallingStart, p.FallingEnd
}

// CurveFillAlpha is the opacity of the area under the tide curve.
const CurveFillAlpha = 0.3

// CSSColors returns theme's palette for a browser frontend, with the
// translucent curve fill as rgba().
func CSSColors(theme Theme) models.ThemeColors {
	p := PaletteFor(theme)
	fill, err := HexToRGBA(p.Curve, CurveFillAlpha)
	if err != nil {
		fill = p.Curve
	}
	return models.ThemeColors{
		Name:         string(ParseTheme(string(theme))),
		Background:   p.Background,
		Foreground:   p.Foreground,
		Grid:         p.Grid,
		Curve:        p.Curve,
		CurveFill:    fill,
		NowLine:      p.NowLine,
		RisingStart:  p.RisingStart,
		RisingEnd:    p.RisingEnd,
		FallingStart: p.FallingStart,
		FallingEnd:   p.FallingEnd,
	}
}
