package main

import (
	"flag"
	"image"
	"log"

	"github.com/swdee/go-detdecode"
	"github.com/swdee/go-detdecode/config"
	"github.com/swdee/go-detdecode/logger"
	"github.com/swdee/go-detdecode/pipeline"
	"github.com/swdee/go-detdecode/render"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	imgFile := flag.String("i", "../data/bus.jpg", "Image file the Model output was produced from")
	rawFile := flag.String("r", "../data/bus-output.bin", "Raw little endian Model output tensor")
	fp16 := flag.Bool("fp16", false, "Raw output tensor holds float16 values instead of float32")
	classes := flag.Int("n", 0, "Number of classes the Model was trained with, defaults to config")
	labelFile := flag.String("l", "", "Optional labels file, defaults to config")
	cfgFile := flag.String("c", "", "Optional YAML config file, defaults to COCO on a 640x640 canvas")
	outFile := flag.String("o", "../data/bus-decode-out.jpg", "The output JPG file with object detection markers")

	flag.Parse()

	cfg := config.Default()

	if *cfgFile != "" {
		var err error
		cfg, err = config.Load(*cfgFile)

		if err != nil {
			log.Fatal("Error loading config: ", err)
		}
	}

	if *classes > 0 {
		cfg.Decode.Classes = *classes
	}

	if *labelFile != "" {
		cfg.Decode.Labels = *labelFile
	}

	lg, err := logger.New(cfg.Log.Level, cfg.Log.Development)

	if err != nil {
		log.Fatal("Error creating logger: ", err)
	}

	defer lg.Sync()

	var labels []string

	if cfg.Decode.Labels != "" {
		labels, err = detdecode.LoadLabels(cfg.Decode.Labels)

		if err != nil {
			lg.Fatal("Error loading labels", zap.Error(err))
		}
	}

	pl, err := pipeline.New(pipeline.FromConfig(cfg))

	if err != nil {
		lg.Fatal("Error creating pipeline", zap.Error(err))
	}

	defer pl.Close()

	// load image
	img := gocv.IMRead(*imgFile, gocv.IMReadColor)

	if img.Empty() {
		lg.Fatal("Error reading image", zap.String("file", *imgFile))
	}

	defer img.Close()

	// letterbox to recover the transform the Model input was made with
	canvas := gocv.NewMat()
	defer canvas.Close()

	tr, err := pl.Prepare(img, &canvas)

	if err != nil {
		lg.Fatal("Error letterboxing image", zap.Error(err))
	}

	out, err := detdecode.ReadOutputFile(*rawFile, cfg.Decode.Classes, *fp16)

	if err != nil {
		lg.Fatal("Error reading Model output", zap.Error(err))
	}

	lg.Debug("read Model output", zap.Int("rows", out.Rows),
		zap.Int("classes", out.Classes))

	dets, err := pl.Decode(out, tr, image.Pt(img.Cols(), img.Rows()))

	if err != nil {
		lg.Fatal("Error decoding detections", zap.Error(err))
	}

	for _, det := range dets {
		lg.Info("detection",
			zap.String("label", detdecode.LabelName(labels, det.Class)),
			zap.Int("class", det.Class),
			zap.Float32("probability", det.Probability),
			zap.Int("left", det.Box.Left),
			zap.Int("top", det.Box.Top),
			zap.Int("right", det.Box.Right),
			zap.Int("bottom", det.Box.Bottom),
		)
	}

	lg.Info("decoded Model output", zap.Int("candidates", out.Rows),
		zap.Int("detections", len(dets)))

	render.DetectionBoxes(&img, dets, labels, render.DefaultFont(), 1)

	// Save the result
	if ok := gocv.IMWrite(*outFile, img); !ok {
		lg.Fatal("Failed to save the image", zap.String("file", *outFile))
	}

	lg.Info("saved annotated image", zap.String("file", *outFile))
}
