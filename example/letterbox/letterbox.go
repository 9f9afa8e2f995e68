package main

import (
	"flag"
	"log"

	"github.com/swdee/go-detdecode/config"
	"github.com/swdee/go-detdecode/logger"
	"github.com/swdee/go-detdecode/preprocess"
	"github.com/swdee/go-detdecode/render"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	imgFile := flag.String("i", "../data/bus.jpg", "Image file to letterbox")
	outFile := flag.String("o", "../data/bus-letterbox-out.jpg", "The output JPG file with the letterboxed canvas")
	cfgFile := flag.String("c", "", "Optional YAML config file, defaults to a 640x640 canvas")
	verbose := flag.Bool("v", false, "Enable debug logging and outline the image region on the canvas")

	flag.Parse()

	cfg := config.Default()

	if *cfgFile != "" {
		var err error
		cfg, err = config.Load(*cfgFile)

		if err != nil {
			log.Fatal("Error loading config: ", err)
		}
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}

	lg, err := logger.New(cfg.Log.Level, cfg.Log.Development)

	if err != nil {
		log.Fatal("Error creating logger: ", err)
	}

	defer lg.Sync()

	// load image
	img := gocv.IMRead(*imgFile, gocv.IMReadColor)

	if img.Empty() {
		lg.Fatal("Error reading image", zap.String("file", *imgFile))
	}

	defer img.Close()

	srcCols, srcRows := img.Cols(), img.Rows()

	tr, err := preprocess.Letterbox(&img, cfg.Size(), cfg.Canvas.ScaleUp, cfg.PadColor())

	if err != nil {
		lg.Fatal("Error letterboxing image", zap.Error(err))
	}

	lg.Info("letterboxed image",
		zap.Int("srcWidth", srcCols),
		zap.Int("srcHeight", srcRows),
		zap.Int("canvasWidth", img.Cols()),
		zap.Int("canvasHeight", img.Rows()),
		zap.Float64("ratio", tr.Ratio),
		zap.Int("left", tr.Left),
		zap.Int("right", tr.Right),
		zap.Int("top", tr.Top),
		zap.Int("bottom", tr.Bottom),
	)

	if *verbose {
		render.LetterboxBounds(&img, tr, render.Yellow, 1)
		lg.Debug("content region", zap.Stringer("rect",
			render.ContentRect(tr, cfg.Size())))
	}

	// Save the result
	if ok := gocv.IMWrite(*outFile, img); !ok {
		lg.Fatal("Failed to save the image", zap.String("file", *outFile))
	}

	lg.Info("saved letterboxed image", zap.String("file", *outFile))
}
