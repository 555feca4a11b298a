// Package blockrand provides block-oriented generators that materialize a
// buffer of output words per internal generation step and serve bytes from
// it through the randcore chunk helpers.
//
// The word stream is derived from a BLAKE3 XOF over the seed, so both
// generators are deterministic and their byte output is reproducible across
// platforms.
package blockrand

import (
	"encoding/binary"
	"io"

	"github.com/database64128/randcore-go"
	"lukechampine.com/blake3"
)

// blockWords is the number of words materialized per generation step.
const blockWords = 16

func newXOF(seed []byte) *blake3.OutputReader {
	h := blake3.New(32, nil)
	h.Write(seed)
	return h.XOF()
}

// Block32 is a block-oriented generator over 32-bit words.
// It natively produces words; Uint64 and Fill are derived.
type Block32 struct {
	xof   *blake3.OutputReader
	words [blockWords]uint32
	index int
}

// NewBlock32 returns a new [Block32] seeded with the given bytes.
func NewBlock32(seed []byte) *Block32 {
	return &Block32{
		xof:   newXOF(seed),
		index: blockWords,
	}
}

// generate refills the word buffer and rewinds the read index.
func (g *Block32) generate() {
	var b [blockWords * 4]byte
	// The XOF stream never ends, so a short read is impossible.
	if _, err := io.ReadFull(g.xof, b[:]); err != nil {
		panic(err)
	}
	for i := range g.words {
		g.words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	g.index = 0
}

// Uint32 returns the next word of the block stream.
func (g *Block32) Uint32() uint32 {
	if g.index >= blockWords {
		g.generate()
	}
	w := g.words[g.index]
	g.index++
	return w
}

// Uint64 returns the next two words combined, first word low.
func (g *Block32) Uint64() uint64 {
	return randcore.Uint64ViaUint32(g)
}

// Fill fills b with little-endian word encodings from the block stream.
//
// A word only partially written at the end of b is still consumed; its
// remaining bytes are discarded, not carried over to the next call.
func (g *Block32) Fill(b []byte) {
	for read := 0; read < len(b); {
		if g.index >= blockWords {
			g.generate()
		}
		consumed, filled := randcore.FillViaUint32Chunks(g.words[g.index:], b[read:])
		g.index += consumed
		read += filled
	}
}

// Read fills b and returns len(b) and nil.
func (g *Block32) Read(b []byte) (int, error) {
	g.Fill(b)
	return len(b), nil
}

// Block64 is a block-oriented generator over 64-bit words.
// It natively produces words; Uint32 and Fill are derived.
type Block64 struct {
	xof   *blake3.OutputReader
	words [blockWords]uint64
	index int
}

// NewBlock64 returns a new [Block64] seeded with the given bytes.
func NewBlock64(seed []byte) *Block64 {
	return &Block64{
		xof:   newXOF(seed),
		index: blockWords,
	}
}

func (g *Block64) generate() {
	var b [blockWords * 8]byte
	if _, err := io.ReadFull(g.xof, b[:]); err != nil {
		panic(err)
	}
	for i := range g.words {
		g.words[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	g.index = 0
}

// Uint64 returns the next word of the block stream.
func (g *Block64) Uint64() uint64 {
	if g.index >= blockWords {
		g.generate()
	}
	w := g.words[g.index]
	g.index++
	return w
}

// Uint32 returns the low 32 bits of the next word, little-endian order.
func (g *Block64) Uint32() uint32 {
	return uint32(g.Uint64())
}

// Fill fills b with little-endian word encodings from the block stream.
//
// Like [Block32.Fill], a partially written final word is fully consumed.
func (g *Block64) Fill(b []byte) {
	for read := 0; read < len(b); {
		if g.index >= blockWords {
			g.generate()
		}
		consumed, filled := randcore.FillViaUint64Chunks(g.words[g.index:], b[read:])
		g.index += consumed
		read += filled
	}
}

// Read fills b and returns len(b) and nil.
func (g *Block64) Read(b []byte) (int, error) {
	g.Fill(b)
	return len(b), nil
}
