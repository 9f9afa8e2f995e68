// Package config loads the YAML configuration used by inference drivers to
// set up the letterbox canvas and detection decoding.
package config

import (
	"image"
	"image/color"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/swdee/go-detdecode"
	"github.com/swdee/go-detdecode/postprocess"
	"gopkg.in/yaml.v3"
)

// Config is the top level configuration file layout
type Config struct {
	Canvas Canvas `yaml:"canvas"`
	Decode Decode `yaml:"decode"`
	Log    Log    `yaml:"log"`
}

// Canvas configures the letterbox transform
type Canvas struct {
	// Width and Height are the Model input tensor dimensions
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// ScaleUp allows images smaller than the canvas to be enlarged
	ScaleUp bool `yaml:"scaleUp"`
	// PadColor is the letterbox padding color as [R, G, B]
	PadColor []uint8 `yaml:"padColor"`
}

// Decode configures the detection decoder
type Decode struct {
	// Classes is the number of classes the Model was trained with
	Classes        int     `yaml:"classes"`
	ScoreThreshold float32 `yaml:"scoreThreshold"`
	IoUThreshold   float32 `yaml:"iouThreshold"`
	MaxWH          float64 `yaml:"maxWH"`
	MaxDetections  int     `yaml:"maxDetections"`
	Inclusions     []int   `yaml:"inclusions"`
	Exclusions     []int   `yaml:"exclusions"`
	// Labels is an optional path to the Model labels file
	Labels string `yaml:"labels"`
}

// Log configures driver logging
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration of a 640x640 COCO trained Model
func Default() Config {

	p := postprocess.COCOParams()

	return Config{
		Canvas: Canvas{
			Width:    640,
			Height:   640,
			PadColor: []uint8{114, 114, 114},
		},
		Decode: Decode{
			Classes:        80,
			ScoreThreshold: p.ScoreThreshold,
			IoUThreshold:   p.IoUThreshold,
			MaxWH:          p.MaxWH,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads and parses the configuration file at path
func Load(path string) (Config, error) {

	data, err := os.ReadFile(path)

	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config file")
	}

	return Parse(data)
}

// Parse decodes YAML configuration on top of the defaults, so keys missing
// from data keep their default values
func Parse(data []byte) (Config, error) {

	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration values are usable
func (c Config) Validate() error {

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return errors.Wrapf(detdecode.ErrInvalidGeometry,
			"canvas %dx%d", c.Canvas.Width, c.Canvas.Height)
	}

	if n := len(c.Canvas.PadColor); n != 0 && n != 1 && n != 3 {
		return errors.Errorf("padColor must have 1 or 3 components, got %d", n)
	}

	if math.IsNaN(float64(c.Decode.ScoreThreshold)) ||
		math.IsNaN(float64(c.Decode.IoUThreshold)) || math.IsNaN(c.Decode.MaxWH) {
		return errors.Wrap(detdecode.ErrMalformedInput, "decode thresholds must be numbers")
	}

	if c.Decode.Classes < 1 {
		return errors.Wrapf(detdecode.ErrMalformedInput,
			"class count %d must be positive", c.Decode.Classes)
	}

	return nil
}

// Size returns the canvas dimensions
func (c Config) Size() image.Point {
	return image.Pt(c.Canvas.Width, c.Canvas.Height)
}

// PadColor returns the letterbox padding color.  A single component is used
// for all channels
func (c Config) PadColor() color.RGBA {

	switch len(c.Canvas.PadColor) {
	case 1:
		v := c.Canvas.PadColor[0]
		return color.RGBA{R: v, G: v, B: v, A: 255}
	case 3:
		return color.RGBA{R: c.Canvas.PadColor[0], G: c.Canvas.PadColor[1],
			B: c.Canvas.PadColor[2], A: 255}
	}

	return color.RGBA{A: 255}
}

// Params returns the decoder parameters
func (c Config) Params() postprocess.Params {
	return postprocess.Params{
		ScoreThreshold: c.Decode.ScoreThreshold,
		IoUThreshold:   c.Decode.IoUThreshold,
		MaxWH:          c.Decode.MaxWH,
		MaxDetections:  c.Decode.MaxDetections,
		Filter: postprocess.ClassFilter{
			Inclusions: c.Decode.Inclusions,
			Exclusions: c.Decode.Exclusions,
		},
	}
}
