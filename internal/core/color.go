package core

// Color names what a cell shows rather than a terminal colour. The front
// end decides how each one looks.
type Color uint8

const (
	ColorDefault Color = iota
	ColorCraft         // the pilot's nose
	ColorCraftBody
	ColorPipe
	ColorPipeCap
	ColorGround
	ColorScore
	ColorInfo // "get ready" and other neutral banners
	ColorAlert
	ColorNotice
)
