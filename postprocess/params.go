package postprocess

// DefaultMaxWH is the class offset applied to boxes during class aware NMS.
// It must exceed any box coordinate extent on the letterboxed canvas
const DefaultMaxWH = 7680

// Params defines the struct containing the parameters to use for decoding
// the raw Model output
type Params struct {
	// ScoreThreshold is the minimum objectness and combined score required for
	// a candidate box to be kept.  Values outside [0, 1] are clamped
	ScoreThreshold float32
	// IoUThreshold is the Non-Maximum Suppression threshold used for defining
	// the maximum allowed Intersection Over Union (IoU) between two bounding
	// boxes of the same class for both to be kept.  Values outside [0, 1]
	// are clamped
	IoUThreshold float32
	// MaxWH is the per class coordinate offset used to keep boxes of different
	// classes apart during NMS.  0 uses DefaultMaxWH, a negative value turns
	// the offset off so NMS runs across classes
	MaxWH float64
	// MaxDetections is the maximum number of detections returned, 0 returns
	// all of them
	MaxDetections int
	// Filter restricts which classes are returned
	Filter ClassFilter
}

// ClassFilter defines the sets of class indices to keep or drop.  Inclusions
// are applied before Exclusions, an empty set does no filtering
type ClassFilter struct {
	// Inclusions when not empty keeps only detections of these classes
	Inclusions []int
	// Exclusions when not empty drops detections of these classes
	Exclusions []int
}

// COCOParams returns an instance of Params configured with default values
// for a Model trained on the COCO dataset featuring:
// - Score Threshold: 0.25
// - IoU Threshold: 0.45
// - MaxWH: 7680
// - Maximum Detections: unlimited
// - No class filtering
func COCOParams() Params {
	return Params{
		ScoreThreshold: 0.25,
		IoUThreshold:   0.45,
		MaxWH:          DefaultMaxWH,
	}
}

// classOffset returns the MaxWH to apply during NMS
func (p Params) classOffset() float64 {

	switch {
	case p.MaxWH == 0:
		return DefaultMaxWH
	case p.MaxWH < 0:
		return 0
	}

	return p.MaxWH
}

// classSet builds a lookup set from the class indices
func classSet(classes []int) map[int]struct{} {

	set := make(map[int]struct{}, len(classes))

	for _, c := range classes {
		set[c] = struct{}{}
	}

	return set
}
