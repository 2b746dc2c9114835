package core

// Color is the foreground color of a screen cell.
// Values map to ANSI palette entries in the platform renderer.
type Color uint8

// Palette used by the game renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightYellow
	ColorBrightGreen
	ColorBrightCyan
	ColorOrange
	ColorBrown
	ColorGray
)
