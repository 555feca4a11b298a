// Package randcore provides the low-level generator abstraction and the
// conversion helpers for implementing it.
//
// A generator natively implements at least one of the three primitives:
// produce a 32-bit word, produce a 64-bit word, or fill a byte slice.
// The helpers in this package derive each primitive from the others.
//
// For cross-platform reproducibility, the byte-producing helpers all use
// little-endian: least-significant part first. For example, [Uint64ViaUint32]
// takes uint32 values x, y, then outputs (y << 32) | x. To derive Uint32 from
// Uint64 in little-endian order, take the low 32 bits of one Uint64 draw.
package randcore

// Uint32Source is a generator that produces 32-bit words.
type Uint32Source interface {
	Uint32() uint32
}

// Uint64Source is a generator that produces 64-bit words.
type Uint64Source interface {
	Uint64() uint64
}

// Filler is a generator that fills byte slices.
type Filler interface {
	Fill(b []byte)
}

// WordSource is a generator that produces words of both widths.
type WordSource interface {
	Uint32Source
	Uint64Source
}

// Source is the full generator interface.
//
// Implementations natively provide at least one method and may derive the
// rest via the helpers in this package. The methods are infallible, and each
// call advances the generator's state. A Source is not safe for concurrent
// use unless its implementation says otherwise.
type Source interface {
	WordSource
	Filler
}
