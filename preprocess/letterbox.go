package preprocess

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"github.com/swdee/go-detdecode"
	"gocv.io/x/gocv"
)

// Letterbox resizes img in place onto a canvas of the given size whilst
// maintaining image aspect, filling the unused space with the pad color.
// The color is converted to a BGR(A) scalar by gocv, for single channel
// images only its blue component is used.
//
// When img already matches size it is returned untouched along with the
// identity transform.
func Letterbox(img *gocv.Mat, size image.Point, scaleUp bool, pad color.RGBA) (Transform, error) {

	if img.Empty() {
		return Transform{}, errors.Wrap(detdecode.ErrInvalidGeometry, "source image is empty")
	}

	src := image.Pt(img.Cols(), img.Rows())

	t, resized, err := ComputeLetterbox(src, size, scaleUp)

	if err != nil {
		return Transform{}, err
	}

	if src == size {
		return t, nil
	}

	tmp := gocv.NewMat()
	defer tmp.Close()

	if resized != src {
		gocv.Resize(*img, &tmp, resized, 0, 0, gocv.InterpolationLinear)
	} else {
		img.CopyTo(&tmp)
	}

	gocv.CopyMakeBorder(tmp, img, t.Top, t.Bottom, t.Left, t.Right,
		gocv.BorderConstant, pad)

	return t, nil
}
