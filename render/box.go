package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/swdee/go-detdecode"
	"github.com/swdee/go-detdecode/postprocess/result"
	"github.com/swdee/go-detdecode/preprocess"
	"gocv.io/x/gocv"
)

// boxLabel defines where the detection object label should be rendered on
// source image
type boxLabel struct {
	rect    image.Rectangle
	clr     color.RGBA
	textClr color.RGBA
	text    string
	textPos image.Point
}

// DetectionBoxes renders the bounding boxes around the object detected.
// Boxes are colored by class so detections of the same class share a color
func DetectionBoxes(img *gocv.Mat, detectResults []result.DetectResult,
	classNames []string, font Font, lineThickness int) {

	// keep a record of all box labels for later rendering
	boxLabels := make([]boxLabel, 0, len(detectResults))

	for _, detResult := range detectResults {

		useClr := ClassColor(detResult.Class)

		// draw rectangle around detected object
		gocv.Rectangle(img, detResult.Box.Rect(), useClr, lineThickness)

		// create text for label
		text := fmt.Sprintf("%s %.2f", detdecode.LabelName(classNames, detResult.Class),
			detResult.Probability)

		boxLabels = append(boxLabels, placeLabel(detResult.Box, text, useClr,
			font, lineThickness))
	}

	// draw all precalculated box labels so they are the top most layer on the
	// image and don't get overlapped by neighbouring boxes
	for _, box := range boxLabels {
		// draw box text gets written on
		gocv.Rectangle(img, box.rect, box.clr, -1)

		// Draw the label over box
		gocv.PutTextWithParams(img, box.text, box.textPos,
			font.Face, font.Scale, box.textClr, font.Thickness,
			font.LineType, false)
	}
}

// placeLabel calculates where the label text and its background go
// relative to the bounding box
func placeLabel(box result.BoxRect, text string, clr color.RGBA, font Font,
	lineThickness int) boxLabel {

	textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

	// Calculate the alignment of text label
	var centerX int

	switch font.Alignment {
	case Center:
		centerX = (box.Left + box.Right) / 2

	case Right:
		centerX = box.Right - (textSize.X / 2) - font.RightPad + (lineThickness / 2)

	case Left:
		fallthrough
	default:
		centerX = box.Left + (textSize.X / 2) + font.LeftPad - (lineThickness / 2)
	}

	top := box.Top

	// labels for boxes touching the top edge are drawn inside the box
	if top-textSize.Y-font.TopPad-font.BottomPad < 0 {
		top = box.Top + textSize.Y + font.TopPad + font.BottomPad
	}

	return boxLabel{
		rect: image.Rect(centerX-textSize.X/2-font.LeftPad,
			top-textSize.Y-font.TopPad-font.BottomPad,
			centerX+textSize.X/2+font.RightPad, top),
		clr:     clr,
		textClr: font.textColor(clr),
		text:    text,
		textPos: image.Pt(centerX-textSize.X/2, top-font.BottomPad),
	}
}

// ContentRect returns the region of a letterboxed canvas that holds the
// resized image, excluding the padding
func ContentRect(t preprocess.Transform, canvas image.Point) image.Rectangle {
	return image.Rect(t.Left, t.Top, canvas.X-t.Right, canvas.Y-t.Bottom)
}

// LetterboxBounds outlines the resized image region on a letterboxed canvas
func LetterboxBounds(img *gocv.Mat, t preprocess.Transform, clr color.RGBA,
	lineThickness int) {

	rect := ContentRect(t, image.Pt(img.Cols(), img.Rows()))

	if rect.Empty() {
		return
	}

	gocv.Rectangle(img, rect, clr, lineThickness)
}
