package preprocess

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"github.com/swdee/go-detdecode"
	"golang.org/x/image/draw"
)

// LetterboxImage is the pure Go equivalent of Letterbox for image.Image
// sources, for use where OpenCV is not available.  Resizing uses bilinear
// interpolation.  When src already matches size it is returned as is.  A
// nil pad color pads with opaque black
func LetterboxImage(src image.Image, size image.Point, scaleUp bool, pad color.Color) (image.Image, Transform, error) {

	if src == nil {
		return nil, Transform{}, errors.Wrap(detdecode.ErrInvalidGeometry, "source image is nil")
	}

	bounds := src.Bounds()

	t, resized, err := ComputeLetterbox(bounds.Size(), size, scaleUp)

	if err != nil {
		return nil, Transform{}, err
	}

	if bounds.Size() == size {
		return src, t, nil
	}

	if pad == nil {
		pad = color.Black
	}

	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))

	// fill canvas with padding color
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: pad}, image.Point{}, draw.Src)

	area := image.Rect(t.Left, t.Top, t.Left+resized.X, t.Top+resized.Y)

	if resized == bounds.Size() {
		draw.Draw(dst, area, src, bounds.Min, draw.Src)
	} else {
		draw.BiLinear.Scale(dst, area, src, bounds, draw.Src, nil)
	}

	return dst, t, nil
}
