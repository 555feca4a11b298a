package cryptorand

import (
	"testing"

	"github.com/database64128/randcore-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceRead(t *testing.T) {
	var s Source
	b := make([]byte, 64)

	n, err := s.Read(b)
	require.NoError(t, err)
	assert.Equal(t, 64, n)
	assert.NotEqual(t, make([]byte, 64), b)
}

func TestSourceFillEmpty(t *testing.T) {
	var s Source
	s.Fill(nil)
}

func TestSourceWords(t *testing.T) {
	var s Source

	// Two draws colliding is a 2^-64 event; treat it as failure.
	assert.NotEqual(t, s.Uint64(), s.Uint64())
}

func TestSourceIsSource(t *testing.T) {
	var _ randcore.Source = Source{}
}
