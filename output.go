package detdecode

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// BoxAttrs is the number of leading attributes in each candidate row, being
// the box center x, center y, width, height and the objectness score
const BoxAttrs = 5

// Output is the raw Model output tensor for a single image.  It is laid out
// row major as Rows candidates of BoxAttrs + Classes columns, with box
// coordinates in the pixel space of the letterboxed canvas
type Output struct {
	// Data holds the tensor values
	Data []float32
	// Rows is the number of candidate boxes
	Rows int
	// Classes is the number of object classes the Model was trained with
	Classes int
}

// NewOutput wraps the given float32 tensor data for a Model trained with
// the given number of classes.  The data is not copied
func NewOutput(data []float32, classes int) (*Output, error) {

	if classes < 1 {
		return nil, errors.Wrapf(ErrMalformedInput, "class count %d must be positive", classes)
	}

	stride := BoxAttrs + classes

	if len(data)%stride != 0 {
		return nil, errors.Wrapf(ErrMalformedInput,
			"tensor length %d is not a multiple of row size %d (%d classes)",
			len(data), stride, classes)
	}

	o := &Output{
		Data:    data,
		Rows:    len(data) / stride,
		Classes: classes,
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}

	return o, nil
}

// NewOutputFromFloat16 converts a tensor of IEEE 754 half precision values,
// as produced by fp16 Model exports, into an Output
func NewOutputFromFloat16(data []uint16, classes int) (*Output, error) {
	return NewOutput(convertFloat16BufferToFloat32(data), classes)
}

// NewOutputFromDense copies a matrix holding one candidate per row into an
// Output.  The matrix must have exactly BoxAttrs + classes columns
func NewOutputFromDense(m mat.Matrix, classes int) (*Output, error) {

	rows, cols := m.Dims()

	if classes < 1 || cols != BoxAttrs+classes {
		return nil, errors.Wrapf(ErrMalformedInput,
			"matrix has %d columns, expected %d for %d classes", cols, BoxAttrs+classes, classes)
	}

	data := make([]float32, 0, rows*cols)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			data = append(data, float32(m.At(r, c)))
		}
	}

	return NewOutput(data, classes)
}

// Stride returns the number of values in each candidate row
func (o *Output) Stride() int {
	return BoxAttrs + o.Classes
}

// Row returns the values of candidate row i
func (o *Output) Row(i int) []float32 {
	s := o.Stride()
	return o.Data[i*s : (i+1)*s]
}

// Box returns the center x, center y, width and height of candidate row i
func (o *Output) Box(i int) (cx, cy, w, h float32) {
	r := o.Row(i)
	return r[0], r[1], r[2], r[3]
}

// Objectness returns the objectness score of candidate row i
func (o *Output) Objectness(i int) float32 {
	return o.Data[i*o.Stride()+4]
}

// ClassScores returns the per class scores of candidate row i
func (o *Output) ClassScores(i int) []float32 {
	return o.Row(i)[BoxAttrs:]
}

// Validate checks the tensor shape is consistent with the class count and
// that every value is finite
func (o *Output) Validate() error {

	if o.Classes < 1 {
		return errors.Wrapf(ErrMalformedInput, "class count %d must be positive", o.Classes)
	}

	if o.Rows < 0 || len(o.Data) != o.Rows*o.Stride() {
		return errors.Wrapf(ErrMalformedInput,
			"tensor length %d does not match %d rows of %d values",
			len(o.Data), o.Rows, o.Stride())
	}

	for i, v := range o.Data {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return errors.Wrapf(ErrMalformedInput,
				"non finite value %v at row %d column %d", v, i/o.Stride(), i%o.Stride())
		}
	}

	return nil
}
