// Package fastrand provides a fast wyrand-based generator that natively
// produces 64-bit words and derives its other primitives via randcore.
package fastrand

import (
	"math/bits"
	_ "unsafe"

	"github.com/database64128/randcore-go"
)

// Uint32 returns a random uint32 from the Go runtime's fastrand.
//
//go:linkname Uint32 runtime.fastrand
func Uint32() uint32

// Uint32n returns a random uint32 in [0, n) from the Go runtime's fastrand.
//
//go:linkname Uint32n runtime.fastrandn
func Uint32n(n uint32) uint32

// Uint64 returns a random uint64 from the Go runtime's fastrand.
//
//go:linkname Uint64 runtime.fastrand64
func Uint64() uint64

// Fastrand is a fast random number generator based on wyrand.
// It natively implements Uint64; Uint32 and Fill are derived, so its byte
// output is reproducible across platforms for a given state.
type Fastrand uint64

// New returns a new [Fastrand] seeded from the Go runtime's fastrand.
func New() Fastrand {
	return Fastrand(Uint64())
}

// NewSeeded returns a new [Fastrand] with the given state.
func NewSeeded(state uint64) Fastrand {
	return Fastrand(state)
}

// Uint64 returns the next 64-bit word.
func (f *Fastrand) Uint64() uint64 {
	*f += 0xa0761d6478bd642f
	hi, lo := bits.Mul64(uint64(*f), uint64(*f^0xe7037ed1a0b428db))
	return hi ^ lo
}

// Uint32 returns the low 32 bits of the next 64-bit word, little-endian order.
func (f *Fastrand) Uint32() uint32 {
	return uint32(f.Uint64())
}

// Fill fills b with the little-endian byte stream of the generator's words.
func (f *Fastrand) Fill(b []byte) {
	randcore.FillBytesViaNext(f, b)
}

// Read fills b and returns len(b) and nil.
func (f *Fastrand) Read(b []byte) (int, error) {
	f.Fill(b)
	return len(b), nil
}
