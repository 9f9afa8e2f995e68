package preprocess

import (
	"image"

	"github.com/pkg/errors"
	"github.com/swdee/go-detdecode"
	"gocv.io/x/gocv"
)

// Scale resizes img in place so its longer side (asMax set) or its shorter
// side equals sideLength, preserving aspect.  No padding is added so the
// returned transform only carries the Ratio
func Scale(img *gocv.Mat, sideLength int, asMax bool) (Transform, error) {

	if img.Empty() {
		return Transform{}, errors.Wrap(detdecode.ErrInvalidGeometry, "source image is empty")
	}

	src := image.Pt(img.Cols(), img.Rows())

	t, resized, err := ComputeScale(src, sideLength, asMax)

	if err != nil {
		return Transform{}, err
	}

	if resized == src {
		return t, nil
	}

	gocv.Resize(*img, img, resized, 0, 0, gocv.InterpolationLinear)

	return t, nil
}
