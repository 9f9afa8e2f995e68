package result

import (
	"fmt"
	"image"
)

// BoxRect are the dimensions of the bounding box of a detected object in
// pixel coordinates of the original image
type BoxRect struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// TopLeft returns the top left corner of the box
func (b BoxRect) TopLeft() image.Point {
	return image.Pt(b.Left, b.Top)
}

// BottomRight returns the bottom right corner of the box
func (b BoxRect) BottomRight() image.Point {
	return image.Pt(b.Right, b.Bottom)
}

// Rect returns the box as an image.Rectangle
func (b BoxRect) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Right, b.Bottom)
}

// Width returns the width of the box
func (b BoxRect) Width() int {
	return b.Right - b.Left
}

// Height returns the height of the box
func (b BoxRect) Height() int {
	return b.Bottom - b.Top
}

// DetectResult defines the attributes of a single object detected
type DetectResult struct {
	// Class is the line number in the labels file the Model was trained on
	// defining the Class of the detected object
	Class int
	// Box are the bounding box dimensions of the object location
	Box BoxRect
	// Probability is the combined confidence score of the object detected,
	// being its objectness multiplied by its best class score
	Probability float32
}

// String formats the detection for logging
func (d DetectResult) String() string {
	return fmt.Sprintf("class %d (%.3f) @ (%d %d %d %d)", d.Class, d.Probability,
		d.Box.Left, d.Box.Top, d.Box.Right, d.Box.Bottom)
}
