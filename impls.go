package randcore

import (
	"encoding/binary"
	"unsafe"
)

// Uint64ViaUint32 implements Uint64 via Uint32, little-endian order.
//
// It draws two words in sequence; the first occupies the low 32 bits.
func Uint64ViaUint32(s Uint32Source) uint64 {
	// Explicitly generate one value before the next.
	x := uint64(s.Uint32())
	y := uint64(s.Uint32())
	return y<<32 | x
}

// FillBytesViaNext implements Fill via Uint64 and Uint32, little-endian order.
//
// Working with the widest word for as long as possible is usually the fastest
// way to fill a slice, so this mostly consumes Uint64, and falls back to a
// single Uint32 only when 4 or fewer bytes remain. No word is consumed unless
// at least one of its bytes is used.
func FillBytesViaNext(s WordSource, b []byte) {
	for len(b) >= 8 {
		binary.LittleEndian.PutUint64(b, s.Uint64())
		b = b[8:]
	}

	switch {
	case len(b) > 4:
		var chunk [8]byte
		binary.LittleEndian.PutUint64(chunk[:], s.Uint64())
		copy(b, chunk[:])
	case len(b) > 0:
		var chunk [4]byte
		binary.LittleEndian.PutUint32(chunk[:], s.Uint32())
		copy(b, chunk[:])
	}
}

type word interface {
	uint32 | uint64
}

// fillViaChunks copies little-endian encodings of src words into dst until
// either side runs out. size is the width of W in bytes.
func fillViaChunks[W word](src []W, dst []byte, size int) (consumed, filled int) {
	filled = min(len(src)*size, len(dst))
	consumed = (filled + size - 1) / size

	for i := 0; i < consumed; i++ {
		w := src[i]
		b := dst[i*size:]
		if len(b) > size {
			b = b[:size]
		}
		for j := range b {
			b[j] = byte(w)
			w >>= 8
		}
	}
	return
}

// FillViaUint32Chunks implements Fill by reading from the output buffer of a
// block based generator, little-endian order.
//
// It returns the number of words consumed from src and the number of bytes
// written to dst. filled may be less than len(dst); consumed is filled/4
// rounded up, so the last consumed word may contribute only a prefix of its
// bytes. Bytes of dst beyond filled are left untouched.
//
// A block generator holding a word buffer and a read index serves Fill like:
//
//	for read < len(b) {
//		if g.index >= len(g.words) {
//			g.generate()
//		}
//		consumed, filled := randcore.FillViaUint32Chunks(g.words[g.index:], b[read:])
//		g.index += consumed
//		read += filled
//	}
func FillViaUint32Chunks(src []uint32, dst []byte) (consumed, filled int) {
	return fillViaChunks(src, dst, 4)
}

// FillViaUint64Chunks implements Fill by reading from the output buffer of a
// block based generator, little-endian order.
//
// It returns the number of words consumed from src and the number of bytes
// written to dst; consumed is filled/8 rounded up. See [FillViaUint32Chunks].
func FillViaUint64Chunks(src []uint64, dst []byte) (consumed, filled int) {
	return fillViaChunks(src, dst, 8)
}

// Uint32ViaFill implements Uint32 via Fill.
//
// The 4 filled bytes are reinterpreted in native byte order: the filling
// source is the canonical byte stream, so the resulting value is not
// portable across platforms of different endianness.
func Uint32ViaFill(f Filler) uint32 {
	var b [4]byte
	f.Fill(b[:])
	return *(*uint32)(unsafe.Pointer(&b[0]))
}

// Uint64ViaFill implements Uint64 via Fill.
//
// Like [Uint32ViaFill], the filled bytes are reinterpreted in native byte
// order.
func Uint64ViaFill(f Filler) uint64 {
	var b [8]byte
	f.Fill(b[:])
	return *(*uint64)(unsafe.Pointer(&b[0]))
}
