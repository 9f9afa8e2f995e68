// Package pipeline combines the letterbox transform and detection decoding
// into a reusable unit for inference drivers, and a pool of them for
// processing independent images concurrently.
package pipeline

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"github.com/swdee/go-detdecode"
	"github.com/swdee/go-detdecode/config"
	"github.com/swdee/go-detdecode/postprocess"
	"github.com/swdee/go-detdecode/postprocess/result"
	"github.com/swdee/go-detdecode/preprocess"
	"gocv.io/x/gocv"
)

// Config defines the parameters shared by every Pipeline
type Config struct {
	// Canvas is the Model input tensor size images are letterboxed to
	Canvas image.Point
	// ScaleUp allows images smaller than the canvas to be enlarged
	ScaleUp bool
	// PadColor is the letterbox padding color
	PadColor color.RGBA
	// Params are the detection decoding parameters
	Params postprocess.Params
}

// FromConfig returns the pipeline Config described by a loaded
// configuration file
func FromConfig(c config.Config) Config {
	return Config{
		Canvas:   c.Size(),
		ScaleUp:  c.Canvas.ScaleUp,
		PadColor: c.PadColor(),
		Params:   c.Params(),
	}
}

// Pipeline letterboxes images for the Model and decodes the Model output.
// It caches a Resizer for the last seen source dimensions so a stream of
// same sized frames only calculates the transform once.  A Pipeline is not
// safe for concurrent use, use a Pool instead
type Pipeline struct {
	cfg     Config
	decoder *postprocess.Decoder
	resizer *preprocess.Resizer
}

// New returns a Pipeline for the given configuration
func New(cfg Config) (*Pipeline, error) {

	if cfg.Canvas.X <= 0 || cfg.Canvas.Y <= 0 {
		return nil, errors.Wrapf(detdecode.ErrInvalidGeometry,
			"canvas %dx%d", cfg.Canvas.X, cfg.Canvas.Y)
	}

	return &Pipeline{
		cfg:     cfg,
		decoder: postprocess.NewDecoder(cfg.Params),
	}, nil
}

// Config returns the pipeline configuration
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Prepare letterboxes src onto the canvas and writes it to dest, returning
// the transform to pass to Decode along with the Model output
func (p *Pipeline) Prepare(src gocv.Mat, dest *gocv.Mat) (preprocess.Transform, error) {

	if src.Empty() {
		return preprocess.Transform{}, errors.Wrap(detdecode.ErrInvalidGeometry,
			"source image is empty")
	}

	if p.resizer == nil || p.resizer.SrcWidth() != src.Cols() ||
		p.resizer.SrcHeight() != src.Rows() {

		if p.resizer != nil {
			p.resizer.Close()
			p.resizer = nil
		}

		r, err := preprocess.NewResizer(src.Cols(), src.Rows(), p.cfg.Canvas.X,
			p.cfg.Canvas.Y, p.cfg.ScaleUp)

		if err != nil {
			return preprocess.Transform{}, err
		}

		p.resizer = r
	}

	if err := p.resizer.LetterBoxResize(src, dest, p.cfg.PadColor); err != nil {
		return preprocess.Transform{}, err
	}

	return p.resizer.Transform(), nil
}

// Decode turns the Model output for an image of the given size into
// detections, using the transform returned by Prepare
func (p *Pipeline) Decode(out *detdecode.Output, t preprocess.Transform,
	size image.Point) ([]result.DetectResult, error) {
	return p.decoder.DetectObjects(out, t, size)
}

// Close frees the resources held by the pipeline
func (p *Pipeline) Close() error {

	if p.resizer == nil {
		return nil
	}

	err := p.resizer.Close()
	p.resizer = nil

	return err
}
