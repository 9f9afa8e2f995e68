package preprocess

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-detdecode"
)

func newUniformImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestLetterboxImage(t *testing.T) {

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	src := newUniformImage(1280, 720, white)

	out, tr, err := LetterboxImage(src, image.Pt(640, 640), false, grey)
	require.NoError(t, err)

	assert.Equal(t, Transform{Ratio: 0.5, Top: 140, Bottom: 140}, tr)
	assert.Equal(t, image.Rect(0, 0, 640, 640), out.Bounds())

	assert.Equal(t, grey, color.RGBAModel.Convert(out.At(320, 0)))
	assert.Equal(t, white, color.RGBAModel.Convert(out.At(320, 320)))
	assert.Equal(t, grey, color.RGBAModel.Convert(out.At(320, 639)))
}

func TestLetterboxImagePadOnly(t *testing.T) {

	red := color.RGBA{R: 255, A: 255}
	src := newUniformImage(320, 240, red)

	out, tr, err := LetterboxImage(src, image.Pt(640, 640), false, black)
	require.NoError(t, err)

	assert.Equal(t, Transform{Ratio: 1, Left: 160, Right: 160, Top: 200, Bottom: 200}, tr)
	assert.Equal(t, black, color.RGBAModel.Convert(out.At(159, 200)))
	assert.Equal(t, red, color.RGBAModel.Convert(out.At(160, 200)))
	assert.Equal(t, red, color.RGBAModel.Convert(out.At(479, 439)))
	assert.Equal(t, black, color.RGBAModel.Convert(out.At(480, 440)))
}

func TestLetterboxImageIdentity(t *testing.T) {

	src := newUniformImage(640, 640, grey)

	out, tr, err := LetterboxImage(src, image.Pt(640, 640), false, black)
	require.NoError(t, err)

	assert.Equal(t, Identity(), tr)
	assert.Same(t, src, out)
}

func TestLetterboxImageInvalid(t *testing.T) {

	_, _, err := LetterboxImage(nil, image.Pt(640, 640), false, black)
	require.ErrorIs(t, err, detdecode.ErrInvalidGeometry)

	_, _, err = LetterboxImage(newUniformImage(10, 10, grey), image.Pt(640, 0), false, black)
	require.ErrorIs(t, err, detdecode.ErrInvalidGeometry)
}

func TestLetterboxImageNilPad(t *testing.T) {

	src := newUniformImage(320, 240, grey)

	out, _, err := LetterboxImage(src, image.Pt(640, 640), false, nil)
	require.NoError(t, err)

	assert.Equal(t, black, color.RGBAModel.Convert(out.At(0, 0)))
	assert.Equal(t, grey, color.RGBAModel.Convert(out.At(320, 320)))
}
