package core

// Color represents a foreground color for a screen cell.
// Frontends map it to their own palette.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorYellow
	ColorWhite
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightWhite
	ColorBrightRed
	ColorOrange
	ColorBrown
	ColorGray
)
