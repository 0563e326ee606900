package deflatecore

import "github.com/nthbyte/deflatecore/internal/adler32"

// Adler32 computes the Adler-32 checksum zlib framing uses (RFC 1950),
// exported for callers that want to verify a zlib stream's trailer
// independently of Inflate.
func Adler32(data []byte) uint32 {
	return adler32.Checksum(data)
}
