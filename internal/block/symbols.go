package block

import "github.com/nthbyte/deflatecore/internal/vli"

// lengthSymbol splits a match length into its literal/length alphabet
// symbol (257..285) and extra-bit payload.
func lengthSymbol(length int) (symbol int, extra uint32) {
	li, lx := vli.Length.Split(length)
	return vli.LengthSymbolBase + li, lx
}

// distanceSymbol splits a match distance into its distance alphabet
// symbol (0..29) and extra-bit payload.
func distanceSymbol(distance int) (symbol int, extra uint32) {
	return vli.Distance.Split(distance)
}
