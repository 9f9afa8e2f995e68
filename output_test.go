package detdecode

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
	"gonum.org/v1/gonum/mat"
)

func TestNewOutput(t *testing.T) {

	data := []float32{
		10, 20, 30, 40, 0.9, 0.1, 0.8,
		50, 60, 70, 80, 0.5, 0.7, 0.2,
	}

	out, err := NewOutput(data, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, out.Rows)
	assert.Equal(t, 7, out.Stride())

	cx, cy, w, h := out.Box(1)
	assert.Equal(t, []float32{50, 60, 70, 80}, []float32{cx, cy, w, h})
	assert.Equal(t, float32(0.9), out.Objectness(0))
	assert.Equal(t, []float32{0.7, 0.2}, out.ClassScores(1))
}

func TestNewOutputMalformed(t *testing.T) {

	tests := []struct {
		name    string
		data    []float32
		classes int
	}{
		{"no classes", []float32{1, 2, 3, 4, 5}, 0},
		{"short row", []float32{1, 2, 3, 4, 5, 6}, 2},
		{"nan", []float32{1, 2, 3, 4, float32(math.NaN()), 6}, 1},
		{"inf", []float32{1, 2, float32(math.Inf(1)), 4, 5, 6}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOutput(tc.data, tc.classes)
			require.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestNewOutputEmpty(t *testing.T) {

	out, err := NewOutput(nil, 80)
	require.NoError(t, err)
	assert.Zero(t, out.Rows)
}

func TestNewOutputFromFloat16(t *testing.T) {

	values := []float32{10, 20, 30, 40, 0.5, 0.25}
	bits := make([]uint16, len(values))

	for i, v := range values {
		bits[i] = float16.Fromfloat32(v).Bits()
	}

	out, err := NewOutputFromFloat16(bits, 1)
	require.NoError(t, err)
	assert.Equal(t, values, out.Data)

	// 0x7e00 is a float16 NaN
	_, err = NewOutputFromFloat16([]uint16{0, 0, 0, 0, 0x7e00, 0}, 1)
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestNewOutputFromDense(t *testing.T) {

	m := mat.NewDense(2, 6, []float64{
		1, 2, 3, 4, 0.5, 0.9,
		5, 6, 7, 8, 0.25, 0.1,
	})

	out, err := NewOutputFromDense(m, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, out.Rows)
	assert.Equal(t, []float32{5, 6, 7, 8, 0.25, 0.1}, out.Row(1))

	_, err = NewOutputFromDense(m, 2)
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestLoadLabels(t *testing.T) {

	file := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, os.WriteFile(file, []byte("person\r\nbicycle\n\ncar\n"), 0o644))

	labels, err := LoadLabels(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"person", "bicycle", "car"}, labels)

	assert.Equal(t, "car", LabelName(labels, 2))
	assert.Equal(t, "class 5", LabelName(labels, 5))

	_, err = LoadLabels(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}
