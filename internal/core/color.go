package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// hueRamp lists palette colors by increasing hue, one per 30 degrees.
var hueRamp = []Color{
	ColorRed,
	ColorOrange,
	ColorYellow,
	ColorBrightYellow,
	ColorBrightGreen,
	ColorGreen,
	ColorCyan,
	ColorBrightCyan,
	ColorBlue,
	ColorBrightBlue,
	ColorMagenta,
	ColorBrightMagenta,
}

// HueColor maps an HSL hue in degrees onto the closest palette color.
func HueColor(hue float64) Color {
	h := int(hue/30+0.5) % len(hueRamp)
	if h < 0 {
		h += len(hueRamp)
	}
	return hueRamp[h]
}
