package detdecode

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// ReadOutput reads a raw little endian Model output tensor, as dumped by an
// inference runtime, from r.  When half is set the values are IEEE 754 half
// precision, otherwise float32
func ReadOutput(r io.Reader, classes int, half bool) (*Output, error) {

	buf, err := io.ReadAll(r)

	if err != nil {
		return nil, errors.Wrap(err, "failed to read tensor")
	}

	if half {
		if len(buf)%2 != 0 {
			return nil, errors.Wrapf(ErrMalformedInput,
				"tensor of %d bytes is not a whole number of float16 values", len(buf))
		}

		data := make([]uint16, len(buf)/2)

		for i := range data {
			data[i] = binary.LittleEndian.Uint16(buf[i*2:])
		}

		return NewOutputFromFloat16(data, classes)
	}

	if len(buf)%4 != 0 {
		return nil, errors.Wrapf(ErrMalformedInput,
			"tensor of %d bytes is not a whole number of float32 values", len(buf))
	}

	data := make([]float32, len(buf)/4)

	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, data); err != nil {
		return nil, errors.Wrap(err, "failed to decode tensor")
	}

	return NewOutput(data, classes)
}

// ReadOutputFile reads a raw Model output tensor from the file at path
func ReadOutputFile(path string, classes int, half bool) (*Output, error) {

	f, err := os.Open(path)

	if err != nil {
		return nil, errors.Wrap(err, "failed to open tensor file")
	}

	defer f.Close()

	out, err := ReadOutput(f, classes, half)

	if err != nil {
		return nil, errors.Wrapf(err, "tensor file %s", path)
	}

	return out, nil
}
