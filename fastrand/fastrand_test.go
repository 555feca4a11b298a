package fastrand

import (
	"encoding/binary"
	"testing"

	"github.com/database64128/randcore-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastrandDeterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	for i := 0; i < 16; i++ {
		require.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestFastrandUint32IsLowHalf(t *testing.T) {
	a := NewSeeded(7)
	b := NewSeeded(7)

	assert.Equal(t, uint32(a.Uint64()), b.Uint32())
}

func TestFastrandFillMatchesWordStream(t *testing.T) {
	a := NewSeeded(1234)
	b := NewSeeded(1234)

	buf := make([]byte, 24)
	a.Fill(buf)

	var expected []byte
	for i := 0; i < 3; i++ {
		expected = binary.LittleEndian.AppendUint64(expected, b.Uint64())
	}
	assert.Equal(t, expected, buf)
}

func TestFastrandRead(t *testing.T) {
	f := New()
	b := make([]byte, 100)

	n, err := f.Read(b)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
}

func TestFastrandIsSource(t *testing.T) {
	f := New()
	var _ randcore.Source = &f
}
