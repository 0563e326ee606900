package deflatecore

import (
	"errors"

	"github.com/nthbyte/deflatecore/internal/flate"
)

// Inflate decodes a raw DEFLATE or zlib-framed stream, returning an error
// if the decoded output would exceed maxOutputLen bytes.
func Inflate(input []byte, maxOutputLen int) ([]byte, error) {
	out, err := flate.Inflate(input, maxOutputLen)
	if err != nil {
		return nil, translateDecodeErr(err)
	}
	return out, nil
}

// InflateInPlace decodes input into output, failing with ErrInvalidInput
// if the decoded length would exceed len(output).
func InflateInPlace(input []byte, output []byte) error {
	if err := flate.InflateInPlace(input, output); err != nil {
		return translateDecodeErr(err)
	}
	return nil
}

func translateDecodeErr(err error) error {
	switch {
	case errors.Is(err, flate.ErrUnexpectedEOF):
		return ErrUnexpectedEOF
	case errors.Is(err, flate.ErrInvalidData):
		return ErrInvalidData
	case errors.Is(err, flate.ErrUnsupportedFormat):
		return ErrUnsupportedFormat
	case errors.Is(err, flate.ErrInvalidInput):
		return ErrInvalidInput
	default:
		return err
	}
}
