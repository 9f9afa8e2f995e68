package preprocess

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-detdecode"
)

func TestComputeLetterbox(t *testing.T) {

	tests := []struct {
		name      string
		src       image.Point
		target    image.Point
		scaleUp   bool
		expResize image.Point
		expected  Transform
	}{
		{"landscape shrink", image.Pt(1280, 720), image.Pt(640, 640), false,
			image.Pt(640, 360), Transform{Ratio: 0.5, Top: 140, Bottom: 140}},
		{"portrait shrink", image.Pt(800, 1000), image.Pt(640, 640), false,
			image.Pt(512, 640), Transform{Ratio: 0.64, Left: 64, Right: 64}},
		{"square shrink", image.Pt(800, 800), image.Pt(640, 640), false,
			image.Pt(640, 640), Transform{Ratio: 0.8}},
		{"odd padding", image.Pt(640, 359), image.Pt(640, 640), false,
			image.Pt(640, 359), Transform{Ratio: 1, Top: 140, Bottom: 141}},
		{"no upscale", image.Pt(320, 240), image.Pt(640, 640), false,
			image.Pt(320, 240), Transform{Ratio: 1, Left: 160, Right: 160, Top: 200, Bottom: 200}},
		{"upscale", image.Pt(320, 240), image.Pt(640, 640), true,
			image.Pt(640, 480), Transform{Ratio: 2, Top: 80, Bottom: 80}},
		{"non square canvas", image.Pt(1920, 1080), image.Pt(960, 640), false,
			image.Pt(960, 540), Transform{Ratio: 0.5, Top: 50, Bottom: 50}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr, resized, err := ComputeLetterbox(tc.src, tc.target, tc.scaleUp)
			require.NoError(t, err)

			assert.Equal(t, tc.expResize, resized)
			assert.InDelta(t, tc.expected.Ratio, tr.Ratio, 1e-9)
			assert.Equal(t, tc.expected.Left, tr.Left, "left")
			assert.Equal(t, tc.expected.Right, tr.Right, "right")
			assert.Equal(t, tc.expected.Top, tr.Top, "top")
			assert.Equal(t, tc.expected.Bottom, tr.Bottom, "bottom")
		})
	}
}

func TestComputeLetterboxIdentity(t *testing.T) {

	tr, resized, err := ComputeLetterbox(image.Pt(640, 640), image.Pt(640, 640), true)
	require.NoError(t, err)

	assert.Equal(t, Identity(), tr)
	assert.True(t, tr.IsIdentity())
	assert.Equal(t, image.Pt(640, 640), resized)
}

func TestComputeLetterboxInvalidGeometry(t *testing.T) {

	tests := []struct {
		name   string
		src    image.Point
		target image.Point
	}{
		{"zero target width", image.Pt(100, 100), image.Pt(0, 640)},
		{"negative target height", image.Pt(100, 100), image.Pt(640, -1)},
		{"zero area source", image.Pt(0, 100), image.Pt(640, 640)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ComputeLetterbox(tc.src, tc.target, false)
			require.ErrorIs(t, err, detdecode.ErrInvalidGeometry)
		})
	}
}

func TestPaddingSplit(t *testing.T) {

	targets := []image.Point{{640, 640}, {416, 416}, {960, 544}, {321, 199}}

	for _, target := range targets {
		for w := 1; w <= 2000; w += 37 {
			for h := 1; h <= 2000; h += 41 {
				for _, up := range []bool{false, true} {
					tr, resized, err := ComputeLetterbox(image.Pt(w, h), target, up)
					require.NoError(t, err)

					require.LessOrEqual(t, tr.Left, tr.Right)
					require.LessOrEqual(t, tr.Top, tr.Bottom)
					require.Equal(t, target.X-resized.X, tr.Left+tr.Right)
					require.Equal(t, target.Y-resized.Y, tr.Top+tr.Bottom)
					require.Greater(t, tr.Ratio, 0.0)
				}
			}
		}
	}
}

func TestLetterboxRoundTrip(t *testing.T) {

	target := image.Pt(640, 640)

	for w := 16; w <= 2400; w += 53 {
		for h := 16; h <= 2400; h += 59 {
			for _, up := range []bool{false, true} {
				src := image.Pt(w, h)

				tr, _, err := ComputeLetterbox(src, target, up)
				require.NoError(t, err)

				x1, y1, x2, y2 := tr.Unpad(0, 0, float64(target.X), float64(target.Y), src)

				// truncating the resized size loses up to one canvas pixel before
				// the coordinate itself is truncated
				tolerance := 1 + 1/tr.Ratio

				require.InDelta(t, 0, x1, 1, "src %v", src)
				require.InDelta(t, 0, y1, 1, "src %v", src)
				require.InDelta(t, float64(w), math.Trunc(x2), tolerance, "src %v", src)
				require.InDelta(t, float64(h), math.Trunc(y2), tolerance, "src %v", src)
			}
		}
	}
}

func TestUnpad(t *testing.T) {

	tr, _, err := ComputeLetterbox(image.Pt(1280, 720), image.Pt(640, 640), false)
	require.NoError(t, err)

	x1, y1, x2, y2 := tr.Unpad(100, 180, 200, 280, image.Pt(1280, 720))

	assert.InDelta(t, 200, x1, 1e-9)
	assert.InDelta(t, 80, y1, 1e-9)
	assert.InDelta(t, 400, x2, 1e-9)
	assert.InDelta(t, 280, y2, 1e-9)
}

func TestUnpadClampsToImage(t *testing.T) {

	tr := Transform{Ratio: 0.5, Top: 140, Bottom: 140}

	x1, y1, x2, y2 := tr.Unpad(-10, 100, 700, 640, image.Pt(1280, 720))

	assert.Equal(t, 0.0, x1)
	assert.Equal(t, 0.0, y1)
	assert.Equal(t, 1280.0, x2)
	assert.Equal(t, 720.0, y2)
}

func TestZeroTransformIsIdentity(t *testing.T) {

	var tr Transform
	assert.True(t, tr.IsIdentity())

	x1, y1, x2, y2 := tr.Unpad(10, 20, 30, 40, image.Pt(100, 100))
	assert.Equal(t, []float64{10, 20, 30, 40}, []float64{x1, y1, x2, y2})
}

func TestRescale(t *testing.T) {

	tr := Transform{Ratio: 0.5, Top: 140, Bottom: 140}

	boxes := [][4]float64{
		{100, 180, 200, 280},
		{0, 0, 640, 640},
	}

	tr.Rescale(boxes, image.Pt(1280, 720))

	assert.Equal(t, [4]float64{200, 80, 400, 280}, boxes[0])
	assert.Equal(t, [4]float64{0, 0, 1280, 720}, boxes[1])
}

func TestComputeScale(t *testing.T) {

	tests := []struct {
		name      string
		src       image.Point
		side      int
		asMax     bool
		expResize image.Point
		expRatio  float64
	}{
		{"landscape max", image.Pt(1280, 720), 640, true, image.Pt(640, 360), 0.5},
		{"landscape min", image.Pt(1280, 720), 360, false, image.Pt(640, 360), 0.5},
		{"portrait max", image.Pt(720, 1280), 960, true, image.Pt(540, 960), 0.75},
		{"portrait min", image.Pt(720, 1280), 1440, false, image.Pt(1440, 2560), 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr, resized, err := ComputeScale(tc.src, tc.side, tc.asMax)
			require.NoError(t, err)

			assert.Equal(t, tc.expResize, resized)
			assert.InDelta(t, tc.expRatio, tr.Ratio, 1e-9)
			assert.Zero(t, tr.Left+tr.Right+tr.Top+tr.Bottom)
		})
	}

	_, _, err := ComputeScale(image.Pt(100, 100), 0, true)
	require.ErrorIs(t, err, detdecode.ErrInvalidGeometry)
}
