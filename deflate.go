package deflatecore

import (
	"errors"

	"github.com/nthbyte/deflatecore/internal/block"
	"github.com/nthbyte/deflatecore/internal/flate"
)

// Level selects the encoder's speed/ratio tradeoff, trading match-finder
// effort for output size.
type Level int

const (
	Fastest Level = Level(block.Fastest)
	Fast    Level = Level(block.Fast)
	Default Level = Level(block.Default)
	Best    Level = Level(block.Best)
)

// Options controls optional output framing.
type Options struct {
	// Zlib wraps the DEFLATE payload in an RFC 1950 header and trailing
	// Adler-32 checksum.
	Zlib bool
}

// Deflate compresses input at the given level. With opts.Zlib set, the
// result is RFC 1950-framed; otherwise it is raw RFC 1951 DEFLATE.
func Deflate(input []byte, level Level, opts Options) ([]byte, error) {
	out, err := flate.Deflate(input, block.Level(level), flate.DeflateOptions{Zlib: opts.Zlib})
	if err != nil {
		return nil, translateEncodeErr(err)
	}
	return out, nil
}

// DeflateZlib compresses input with zlib framing, equivalent to
// Deflate(input, level, Options{Zlib: true}).
func DeflateZlib(input []byte, level Level) ([]byte, error) {
	return Deflate(input, level, Options{Zlib: true})
}

func translateEncodeErr(err error) error {
	switch {
	case errors.Is(err, flate.ErrEmptyInput):
		return ErrEmptyInput
	default:
		return err
	}
}
