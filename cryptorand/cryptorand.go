// Package cryptorand provides a generator backed by the operating system's
// entropy source. It natively fills byte slices; its word primitives are
// derived and therefore decode in native byte order, so word values are not
// reproducible across platforms of different endianness.
package cryptorand

import (
	"crypto/rand"

	"github.com/database64128/randcore-go"
)

// Source reads from crypto/rand. The zero value is ready to use and safe
// for concurrent use.
type Source struct{}

// Fill fills b with cryptographically secure random bytes.
// It panics if the OS entropy source fails, which should never happen.
func (Source) Fill(b []byte) {
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
}

// Uint32 returns a random uint32 derived from a 4-byte fill.
func (s Source) Uint32() uint32 {
	return randcore.Uint32ViaFill(s)
}

// Uint64 returns a random uint64 derived from an 8-byte fill.
func (s Source) Uint64() uint64 {
	return randcore.Uint64ViaFill(s)
}

// Read fills b and returns len(b) and nil.
func (s Source) Read(b []byte) (int, error) {
	s.Fill(b)
	return len(b), nil
}
