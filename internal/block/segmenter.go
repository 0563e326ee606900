package block

import "github.com/nthbyte/deflatecore/internal/lz"

// Segment partitions a token stream into blocks of at least MinBlockSize
// tokens each (a stream shorter than MinBlockSize becomes a single block;
// a remainder shorter than MinBlockSize joins the last block); the last
// chunk inherits the final-block flag (RFC 1951
// section 3.2.3, BFINAL). Adjacent-block merging is not implemented: every
// chunk this produces is independently RFC-correct on its own.
func Segment(tokens []lz.Token) []*Block {
	if len(tokens) == 0 {
		return []*Block{NewBlock(nil, true)}
	}

	var blocks []*Block
	for start := 0; start < len(tokens); {
		end := start + MinBlockSize
		if len(tokens)-end < MinBlockSize {
			end = len(tokens)
		}
		final := end == len(tokens)
		blocks = append(blocks, NewBlock(tokens[start:end], final))
		start = end
	}
	return blocks
}
