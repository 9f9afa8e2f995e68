package preprocess

import (
	"image"
	"math"

	"github.com/pkg/errors"
	"github.com/swdee/go-detdecode"
)

// Transform describes the letterbox mapping applied to a source image so
// the Model output can be mapped back onto it.  The zero value is the
// identity transform
type Transform struct {
	// Ratio is the resize factor applied to both axes
	Ratio float64
	// Left is the padding in pixels added to the left edge after resize
	Left int
	// Right is the padding in pixels added to the right edge after resize
	Right int
	// Top is the padding in pixels added to the top edge after resize
	Top int
	// Bottom is the padding in pixels added to the bottom edge after resize
	Bottom int
}

// Identity returns the transform of an image that already matches the
// canvas size
func Identity() Transform {
	return Transform{Ratio: 1}
}

// IsIdentity reports whether the transform leaves coordinates unchanged
func (t Transform) IsIdentity() bool {
	return t.ratio() == 1 && t.Left == 0 && t.Right == 0 && t.Top == 0 && t.Bottom == 0
}

// ratio returns the resize factor, treating an unset Ratio as 1
func (t Transform) ratio() float64 {
	if t.Ratio <= 0 {
		return 1
	}
	return t.Ratio
}

// Unpad maps a box in letterboxed canvas coordinates back onto the source
// image of the given size.  The paddings are subtracted component wise from
// (x1, y1, x2, y2) as (Left, Top, Right, Bottom), the result divided by the
// Ratio and clamped to the image bounds
func (t Transform) Unpad(x1, y1, x2, y2 float64, size image.Point) (float64, float64, float64, float64) {

	r := t.ratio()
	w := float64(size.X)
	h := float64(size.Y)

	x1 = clampFloat((x1-float64(t.Left))/r, 0, w)
	y1 = clampFloat((y1-float64(t.Top))/r, 0, h)
	x2 = clampFloat((x2-float64(t.Right))/r, 0, w)
	y2 = clampFloat((y2-float64(t.Bottom))/r, 0, h)

	return x1, y1, x2, y2
}

// Rescale maps each xyxy box in place from canvas coordinates onto the
// source image of the given size
func (t Transform) Rescale(boxes [][4]float64, size image.Point) {
	for i, b := range boxes {
		boxes[i][0], boxes[i][1], boxes[i][2], boxes[i][3] = t.Unpad(b[0], b[1], b[2], b[3], size)
	}
}

// ComputeLetterbox calculates the letterbox transform to fit an image of
// size src onto a canvas of size target without distortion.  It returns the
// transform and the size the image must be resized to before padding.
//
// The image is only resized when it must shrink, or when it can grow and
// scaleUp is set, otherwise it is padded at its original size.  Padding is
// split per axis with the smaller half on the leading edge (Left, Top).
func ComputeLetterbox(src, target image.Point, scaleUp bool) (Transform, image.Point, error) {

	if target.X <= 0 || target.Y <= 0 {
		return Transform{}, image.Point{}, errors.Wrapf(detdecode.ErrInvalidGeometry,
			"target canvas %dx%d", target.X, target.Y)
	}

	if src.X <= 0 || src.Y <= 0 {
		return Transform{}, image.Point{}, errors.Wrapf(detdecode.ErrInvalidGeometry,
			"source image %dx%d has no area", src.X, src.Y)
	}

	if src == target {
		return Identity(), src, nil
	}

	scaleW := float64(target.X) / float64(src.X)
	scaleH := float64(target.Y) / float64(src.Y)
	ratio := math.Min(scaleW, scaleH)

	resized := src

	if ratio < 1 || (ratio > 1 && scaleUp) {
		// the limiting axis fills the canvas exactly, the other is truncated
		if scaleW <= scaleH {
			resized.X = target.X
			resized.Y = clampInt(int(float64(src.Y)*ratio), 1, target.Y)
		} else {
			resized.X = clampInt(int(float64(src.X)*ratio), 1, target.X)
			resized.Y = target.Y
		}
	} else {
		ratio = 1
	}

	widthPad := target.X - resized.X
	heightPad := target.Y - resized.Y

	t := Transform{
		Ratio: ratio,
		Left:  widthPad / 2,
		Top:   heightPad / 2,
	}
	t.Right = widthPad - t.Left
	t.Bottom = heightPad - t.Top

	return t, resized, nil
}

// ComputeScale calculates the resize needed so the longer side of src
// (asMax set) or its shorter side equals sideLength, preserving aspect
func ComputeScale(src image.Point, sideLength int, asMax bool) (Transform, image.Point, error) {

	if sideLength <= 0 {
		return Transform{}, image.Point{}, errors.Wrapf(detdecode.ErrInvalidGeometry,
			"side length %d", sideLength)
	}

	if src.X <= 0 || src.Y <= 0 {
		return Transform{}, image.Point{}, errors.Wrapf(detdecode.ErrInvalidGeometry,
			"source image %dx%d has no area", src.X, src.Y)
	}

	var ratio float64
	resized := src

	if (src.Y > src.X) == asMax {
		ratio = float64(sideLength) / float64(src.Y)
		resized.Y = sideLength
		resized.X = maxInt(int(float64(src.X)*ratio), 1)
	} else {
		ratio = float64(sideLength) / float64(src.X)
		resized.X = sideLength
		resized.Y = maxInt(int(float64(src.Y)*ratio), 1)
	}

	return Transform{Ratio: ratio}, resized, nil
}

// clampFloat restricts val to the range min and max
func clampFloat(val, min, max float64) float64 {
	return math.Max(min, math.Min(val, max))
}

// clampInt restricts val to the range min and max
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
