package preprocess

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"github.com/swdee/go-detdecode"
	"gocv.io/x/gocv"
)

// Resizer defines the struct used for letterboxing a stream of images that
// all share the same source dimensions, such as frames from a camera.  The
// transform is calculated once and the intermediate Mat reused
type Resizer struct {
	// srcWidth is the width of the source image
	srcWidth int
	// srcHeight is the height of the source image
	srcHeight int
	// destWidth is the width of the canvas to scale to
	destWidth int
	// destHeight is the height of the canvas to scale to
	destHeight int
	// tempMat is a Mat used during the resize process
	tempMat gocv.Mat
	// transform holds the letterbox parameters used in scaling
	transform Transform
	// resize dimensions before padding
	resize image.Point
}

// NewResizer returns a resizer used for scaling an image to the canvas
// dimensions needed for the input tensor size
func NewResizer(srcWidth, srcHeight, destWidth, destHeight int, scaleUp bool) (*Resizer, error) {

	t, resize, err := ComputeLetterbox(image.Pt(srcWidth, srcHeight),
		image.Pt(destWidth, destHeight), scaleUp)

	if err != nil {
		return nil, err
	}

	r := &Resizer{
		srcWidth:   srcWidth,
		srcHeight:  srcHeight,
		destWidth:  destWidth,
		destHeight: destHeight,
		tempMat:    gocv.NewMat(),
		transform:  t,
		resize:     resize,
	}

	return r, nil
}

// Close frees memory allocated during resize process
func (r *Resizer) Close() error {
	return r.tempMat.Close()
}

// LetterBoxResize resizes the src image to the canvas dimensions whilst
// maintaining image aspect and writes it to dest.  Color is that used for
// letter box padding.  The src image must have the source dimensions the
// Resizer was created with
func (r *Resizer) LetterBoxResize(src gocv.Mat, dest *gocv.Mat, color color.RGBA) error {

	if src.Cols() != r.srcWidth || src.Rows() != r.srcHeight {
		return errors.Wrapf(detdecode.ErrInvalidGeometry,
			"image %dx%d does not match resizer source %dx%d",
			src.Cols(), src.Rows(), r.srcWidth, r.srcHeight)
	}

	if r.srcWidth == r.destWidth && r.srcHeight == r.destHeight {
		src.CopyTo(dest)
		return nil
	}

	if r.resize.X == r.srcWidth && r.resize.Y == r.srcHeight {
		src.CopyTo(&r.tempMat)
	} else {
		gocv.Resize(src, &r.tempMat, r.resize, 0, 0, gocv.InterpolationLinear)
	}

	gocv.CopyMakeBorder(r.tempMat, dest, r.transform.Top, r.transform.Bottom,
		r.transform.Left, r.transform.Right, gocv.BorderConstant, color)

	return nil
}

// Transform returns the letterbox transform applied by the resizer
func (r *Resizer) Transform() Transform {
	return r.transform
}

// ScaleFactor returns the scale factor used in letterbox resize
func (r *Resizer) ScaleFactor() float64 {
	return r.transform.Ratio
}

// XPad returns the left padding used in letterbox resize
func (r *Resizer) XPad() int {
	return r.transform.Left
}

// YPad returns the top padding used in letterbox resize
func (r *Resizer) YPad() int {
	return r.transform.Top
}

// SrcWidth returns the width of the source image
func (r *Resizer) SrcWidth() int {
	return r.srcWidth
}

// SrcHeight returns the height of the source image
func (r *Resizer) SrcHeight() int {
	return r.srcHeight
}
