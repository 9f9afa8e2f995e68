package postprocess

import (
	"image"
	"sort"

	"github.com/pkg/errors"
	"github.com/swdee/go-detdecode"
	"github.com/swdee/go-detdecode/postprocess/result"
	"github.com/swdee/go-detdecode/preprocess"
)

// Decoder defines the struct for turning raw YOLO style Model output into
// final detections
type Decoder struct {
	// Params are the decoding parameters
	Params Params
}

// NewDecoder returns an instance of the decoder
func NewDecoder(p Params) *Decoder {
	return &Decoder{
		Params: p,
	}
}

// candidate is a single row of the raw output as it passes through the
// filter stages
type candidate struct {
	// row is the index of the candidate in the raw output
	row int
	// box is the bounding box in letterboxed canvas coordinates
	box Box
	// objectness is the candidates objectness score
	objectness float32
	// score is the combined objectness and best class score
	score float32
	// class is the best scoring class index
	class int
}

// stage narrows the candidates, returning an empty slice stops the pipeline
type stage func(cands []candidate) []candidate

// DetectObjects takes the raw Model output for an image and runs the object
// detection process then returns the results.  The transform must be the one
// returned when letterboxing the image and size the dimensions of the
// original image.
//
// Detections are ordered by descending score.  No detections is not an error,
// an empty result is returned.
func (d *Decoder) DetectObjects(out *detdecode.Output, t preprocess.Transform,
	size image.Point) ([]result.DetectResult, error) {

	if out == nil {
		return nil, errors.Wrap(detdecode.ErrMalformedInput, "output is nil")
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}

	if size.X <= 0 || size.Y <= 0 {
		return nil, errors.Wrapf(detdecode.ErrInvalidGeometry,
			"image size %dx%d has no area", size.X, size.Y)
	}

	threshold := clamp(d.Params.ScoreThreshold, 0, 1)

	cands := gateObjectness(out, threshold)

	if len(cands) == 0 {
		return nil, nil
	}

	stages := []stage{
		bestClass(out, threshold),
		include(d.Params.Filter.Inclusions),
		exclude(d.Params.Filter.Exclusions),
		suppress(float64(clamp(d.Params.IoUThreshold, 0, 1)), d.Params.classOffset()),
	}

	for _, s := range stages {
		cands = s(cands)

		if len(cands) == 0 {
			return nil, nil
		}
	}

	if d.Params.MaxDetections > 0 && len(cands) > d.Params.MaxDetections {
		cands = cands[:d.Params.MaxDetections]
	}

	return unpad(cands, t, size), nil
}

// gateObjectness keeps the rows whose objectness reaches the threshold
func gateObjectness(out *detdecode.Output, threshold float32) []candidate {

	var cands []candidate

	for i := 0; i < out.Rows; i++ {

		obj := out.Objectness(i)

		if obj < threshold {
			continue
		}

		cx, cy, w, h := out.Box(i)

		cands = append(cands, candidate{
			row:        i,
			box:        BoxFromCenter(float64(cx), float64(cy), float64(w), float64(h)),
			objectness: obj,
		})
	}

	return cands
}

// bestClass reduces each candidate to its highest combined class score and
// gates on that score again, as objectness alone can pass whilst no single
// class score is high enough
func bestClass(out *detdecode.Output, threshold float32) stage {
	return func(cands []candidate) []candidate {

		kept := make([]candidate, 0, len(cands))

		for _, c := range cands {

			scores := out.ClassScores(c.row)
			best := c.objectness * scores[0]
			class := 0

			for k := 1; k < len(scores); k++ {
				if s := c.objectness * scores[k]; s > best {
					best = s
					class = k
				}
			}

			if best < threshold {
				continue
			}

			c.score = best
			c.class = class
			kept = append(kept, c)
		}

		return kept
	}
}

// include keeps only candidates whose best class is in the inclusions
func include(inclusions []int) stage {
	return func(cands []candidate) []candidate {

		if len(inclusions) == 0 {
			return cands
		}

		set := classSet(inclusions)
		kept := make([]candidate, 0, len(cands))

		for _, c := range cands {
			if _, ok := set[c.class]; ok {
				kept = append(kept, c)
			}
		}

		return kept
	}
}

// exclude drops candidates whose best class is in the exclusions
func exclude(exclusions []int) stage {
	return func(cands []candidate) []candidate {

		if len(exclusions) == 0 {
			return cands
		}

		set := classSet(exclusions)
		kept := make([]candidate, 0, len(cands))

		for _, c := range cands {
			if _, ok := set[c.class]; !ok {
				kept = append(kept, c)
			}
		}

		return kept
	}
}

// suppress runs class aware NMS and returns the survivors in descending
// score order
func suppress(iouThreshold, maxWH float64) stage {
	return func(cands []candidate) []candidate {

		boxes := make([]Box, len(cands))
		scores := make([]float32, len(cands))
		classes := make([]int, len(cands))

		for i, c := range cands {
			boxes[i] = c.box
			scores[i] = c.score
			classes[i] = c.class
		}

		keep := NMS(boxes, scores, classes, iouThreshold, maxWH)
		kept := make([]candidate, len(keep))

		for i, idx := range keep {
			kept[i] = cands[idx]
		}

		return kept
	}
}

// unpad maps the surviving candidates back onto the original image
func unpad(cands []candidate, t preprocess.Transform, size image.Point) []result.DetectResult {

	group := make([]result.DetectResult, 0, len(cands))

	for _, c := range cands {
		x1, y1, x2, y2 := t.Unpad(c.box.X1, c.box.Y1, c.box.X2, c.box.Y2, size)

		group = append(group, result.DetectResult{
			Class: c.class,
			Box: result.BoxRect{
				Left:   int(x1),
				Top:    int(y1),
				Right:  int(x2),
				Bottom: int(y2),
			},
			Probability: c.score,
		})
	}

	return group
}

// SortByClass orders detections by class index, keeping descending score
// order within each class
func SortByClass(dets []result.DetectResult) {
	sort.SliceStable(dets, func(i, j int) bool {
		return dets[i].Class < dets[j].Class
	})
}
