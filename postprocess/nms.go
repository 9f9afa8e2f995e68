package postprocess

import (
	"math"
	"sort"
)

// Box is an axis aligned bounding box in (x1, y1, x2, y2) corner form
type Box struct {
	X1, Y1, X2, Y2 float64
}

// BoxFromCenter converts a center x, center y, width and height box into
// corner form
func BoxFromCenter(cx, cy, w, h float64) Box {
	return Box{
		X1: cx - w/2,
		Y1: cy - h/2,
		X2: cx + w/2,
		Y2: cy + h/2,
	}
}

// Area returns the area of the box, zero for degenerate boxes
func (b Box) Area() float64 {
	return math.Max(0, b.X2-b.X1) * math.Max(0, b.Y2-b.Y1)
}

// Offset returns the box translated by d on both axes
func (b Box) Offset(d float64) Box {
	return Box{X1: b.X1 + d, Y1: b.Y1 + d, X2: b.X2 + d, Y2: b.Y2 + d}
}

// IoU works out the Intersection over Union value of two boxes
func IoU(a, b Box) float64 {

	w := math.Min(a.X2, b.X2) - math.Max(a.X1, b.X1)
	h := math.Min(a.Y2, b.Y2) - math.Max(a.Y1, b.Y1)

	if w <= 0 || h <= 0 {
		return 0
	}

	intersection := w * h
	union := a.Area() + b.Area() - intersection

	if union <= 0 {
		return 0
	}

	return intersection / union
}

// NMS implements class aware greedy Non-Maximum Suppression.
//
// Each box is offset by its class multiplied by maxWH before overlaps are
// computed, so boxes of different classes can never suppress each other when
// maxWH exceeds the coordinate extent.  Pass nil classes for class agnostic
// suppression.  Boxes are visited in descending score order, with equal
// scores keeping their input order, and any remaining box whose IoU with a
// kept box exceeds iouThreshold is removed.
//
// It returns the indices of the kept boxes in descending score order.  The
// scores, and classes when given, must have the same length as boxes.
func NMS(boxes []Box, scores []float32, classes []int, iouThreshold float64, maxWH float64) []int {

	n := len(boxes)

	if len(scores) != n || (classes != nil && len(classes) != n) {
		panic("postprocess: NMS boxes, scores and classes length mismatch")
	}

	order := make([]int, n)

	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	offset := boxes

	if classes != nil {
		offset = make([]Box, n)

		for i, b := range boxes {
			offset[i] = b.Offset(float64(classes[i]) * maxWH)
		}
	}

	suppressed := make([]bool, n)
	keep := make([]int, 0, n)

	for i, idx := range order {
		if suppressed[i] {
			continue
		}

		keep = append(keep, idx)

		for j := i + 1; j < n; j++ {
			if suppressed[j] {
				continue
			}

			if IoU(offset[idx], offset[order[j]]) > iouThreshold {
				suppressed[j] = true
			}
		}
	}

	return keep
}
