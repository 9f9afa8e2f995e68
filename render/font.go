package render

import (
	"image/color"

	"gocv.io/x/gocv"
)

// Alignment of a label relative to its bounding box
type Alignment int

const (
	Left   Alignment = 1
	Center Alignment = 2
	Right  Alignment = 3
)

// Font defines the parameters for rendering text on an image using GoCV
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
	// Padding to place around text
	LeftPad   int
	RightPad  int
	TopPad    int
	BottomPad int
	// Alignment of the text label to the bounding box
	Alignment Alignment
	// Contrast picks black or white text to suit each label background
	// instead of using Color
	Contrast bool
}

// textColor returns the color to write label text in over the label
// background bg
func (f Font) textColor(bg color.RGBA) color.RGBA {

	if !f.Contrast {
		return f.Color
	}

	// ITU-R BT.601 luma
	luma := 299*int(bg.R) + 587*int(bg.G) + 114*int(bg.B)

	if luma > 150*1000 {
		return Black
	}

	return White
}

// DefaultFont returns label settings sized for 640 pixel canvases with text
// contrasting against the class colored label background
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.45,
		Color:     White,
		Thickness: 1,
		LineType:  gocv.LineAA,
		LeftPad:   3,
		RightPad:  3,
		TopPad:    3,
		BottomPad: 5,
		Alignment: Left,
		Contrast:  true,
	}
}
