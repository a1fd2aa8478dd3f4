// Package render turns snapshots into draw plans, table rows and dial arcs.
// Everything here is pure; surfaces (SVG, terminal) consume the results.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Placeholder is shown wherever a value is missing.
const Placeholder = "--"

// Format12Hour renders "3:04 PM" in t's own location.
func Format12Hour(t time.Time) string {
	return t.Format("3:04 PM")
}

// FormatClock renders the large dashboard clock.
func FormatClock(t time.Time) string {
	return t.Format("3:04:05 PM")
}

// FormatDate renders the dashboard date line, e.g. "Thursday, November 27".
func FormatDate(t time.Time) string {
	return t.Format("Monday, January 2")
}

// FormatHeight renders a tide height in feet.
func FormatHeight(h float64) string {
	return fmt.Sprintf("%.1f ft", h)
}

// FormatLastUpdated renders the "last updated" footer. A zero time means
// no fetch has succeeded yet.
func FormatLastUpdated(t time.Time) string {
	if t.IsZero() {
		return "Updated " + Placeholder
	}
	return "Updated " + Format12Hour(t)
}

// FormatPercentage renders a [0,1] fraction as a whole percentage.
func FormatPercentage(p float64) string {
	return fmt.Sprintf("%d%%", int(clamp01(p)*100+0.5))
}

// rgb parses "#rgb" or "#rrggbb".
func rgb(hex string) (r, g, b uint8, err error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// HexToRGBA converts "#rrggbb" and an alpha in [0,1] into a CSS rgba() string.
func HexToRGBA(hex string, alpha float64) (string, error) {
	r, g, b, err := rgb(hex)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b,
		strconv.FormatFloat(clamp01(alpha), 'f', -1, 64)), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
