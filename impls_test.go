package randcore

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays a fixed sequence of 64-bit words and records how
// many words of each width were drawn.
type scriptedSource struct {
	words   []uint64
	pos     int
	draws32 int
	draws64 int
}

func (s *scriptedSource) next() uint64 {
	w := s.words[s.pos]
	s.pos++
	return w
}

func (s *scriptedSource) Uint32() uint32 {
	s.draws32++
	return uint32(s.next())
}

func (s *scriptedSource) Uint64() uint64 {
	s.draws64++
	return s.next()
}

func TestUint64ViaUint32(t *testing.T) {
	s := &scriptedSource{words: []uint64{0x11223344, 0xdeadbeef}}
	got := Uint64ViaUint32(s)

	// First draw is the low half, second the high half.
	assert.Equal(t, uint64(0xdeadbeef_11223344), got)
	assert.Equal(t, 2, s.draws32)
	assert.Equal(t, 0, s.draws64)
}

func TestFillBytesViaNext(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		draws64 int
		draws32 int
	}{
		{"Empty", 0, 0, 0},
		{"OneByte", 1, 0, 1},
		{"FourBytes", 4, 0, 1},
		{"FiveBytes", 5, 1, 0},
		{"SevenBytes", 7, 1, 0},
		{"OneWord", 8, 1, 0},
		{"WordAndByte", 9, 1, 1},
		{"WordAndFive", 13, 2, 0},
		{"TwoWords", 16, 2, 0},
		{"Large", 75, 9, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := make([]uint64, 16)
			for i := range words {
				words[i] = 0x0101010101010101 * uint64(i+1)
			}
			s := &scriptedSource{words: words}

			b := make([]byte, tt.n)
			FillBytesViaNext(s, b)

			assert.Equal(t, tt.draws64, s.draws64, "64-bit draws")
			assert.Equal(t, tt.draws32, s.draws32, "32-bit draws")

			// Every byte group matches the little-endian encoding of the
			// consumed word, in consumption order, truncated at the end.
			expected := []byte{}
			for _, w := range words[:s.pos] {
				expected = binary.LittleEndian.AppendUint64(expected, w)
			}
			assert.Equal(t, expected[:tt.n], b)
		})
	}
}

func TestFillViaUint32Chunks(t *testing.T) {
	src := []uint32{1, 2, 3}

	tests := []struct {
		name     string
		dstLen   int
		consumed int
		filled   int
		expected []byte
	}{
		{"Partial", 11, 3, 11, []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0}},
		{"SourceExhausted", 13, 3, 12, []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}},
		{"PartialSecondWord", 5, 2, 5, []byte{1, 0, 0, 0, 2}},
		{"Exact", 12, 3, 12, []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}},
		{"ShorterThanWord", 3, 1, 3, []byte{1, 0, 0}},
		{"Empty", 0, 0, 0, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, tt.dstLen)
			for i := range dst {
				dst[i] = 0xaa
			}

			consumed, filled := FillViaUint32Chunks(src, dst)
			require.Equal(t, tt.consumed, consumed)
			require.Equal(t, tt.filled, filled)
			assert.Equal(t, tt.expected, dst[:filled])

			// Bytes past filled are untouched.
			for _, b := range dst[filled:] {
				assert.Equal(t, byte(0xaa), b)
			}
		})
	}
}

func TestFillViaUint64Chunks(t *testing.T) {
	src := []uint64{1, 2}

	tests := []struct {
		name     string
		dstLen   int
		consumed int
		filled   int
		expected []byte
	}{
		{"Partial", 11, 2, 11, []byte{1, 0, 0, 0, 0, 0, 0, 0, 2, 0, 0}},
		{"SourceExhausted", 17, 2, 16, []byte{1, 0, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0}},
		{"ShorterThanWord", 5, 1, 5, []byte{1, 0, 0, 0, 0}},
		{"Empty", 0, 0, 0, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, tt.dstLen)
			for i := range dst {
				dst[i] = 0xaa
			}

			consumed, filled := FillViaUint64Chunks(src, dst)
			require.Equal(t, tt.consumed, consumed)
			require.Equal(t, tt.filled, filled)
			assert.Equal(t, tt.expected, dst[:filled])

			for _, b := range dst[filled:] {
				assert.Equal(t, byte(0xaa), b)
			}
		})
	}
}

func TestFillViaChunksEmptySource(t *testing.T) {
	dst := []byte{0xaa, 0xaa, 0xaa}

	consumed, filled := FillViaUint32Chunks(nil, dst)
	assert.Equal(t, 0, consumed)
	assert.Equal(t, 0, filled)

	consumed, filled = FillViaUint64Chunks(nil, dst)
	assert.Equal(t, 0, consumed)
	assert.Equal(t, 0, filled)

	assert.Equal(t, []byte{0xaa, 0xaa, 0xaa}, dst)
}

func TestFillViaChunksDeterministic(t *testing.T) {
	src := []uint32{0x04030201, 0x08070605, 0x0c0b0a09}

	first := make([]byte, 10)
	c1, f1 := FillViaUint32Chunks(src, first)

	second := make([]byte, 10)
	c2, f2 := FillViaUint32Chunks(src, second)

	assert.Equal(t, c1, c2)
	assert.Equal(t, f1, f2)
	assert.Equal(t, first, second)
}

// byteStream fills with a fixed repeating byte pattern.
type byteStream struct {
	next byte
}

func (s *byteStream) Fill(b []byte) {
	for i := range b {
		b[i] = s.next
		s.next++
	}
}

func TestUint32ViaFill(t *testing.T) {
	s := &byteStream{next: 1}
	got := Uint32ViaFill(s)

	// Native-endian reinterpretation of the filled bytes.
	assert.Equal(t, binary.NativeEndian.Uint32([]byte{1, 2, 3, 4}), got)
	assert.Equal(t, byte(5), s.next, "exactly one 4-byte fill")
}

func TestUint64ViaFill(t *testing.T) {
	s := &byteStream{next: 1}
	got := Uint64ViaFill(s)

	assert.Equal(t, binary.NativeEndian.Uint64([]byte{1, 2, 3, 4, 5, 6, 7, 8}), got)
	assert.Equal(t, byte(9), s.next, "exactly one 8-byte fill")
}
