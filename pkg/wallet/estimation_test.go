package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTxSize(t *testing.T) {
	tests := []struct {
		numInputs    int
		numOutputs   int
		expectedSize int
	}{
		{1, 1, 192},
		{2, 2, 372},
		{3, 5, 620},
	}
	for _, tt := range tests {
		size := EstimateTxSize(tt.numInputs, tt.numOutputs)
		assert.Equal(t, tt.expectedSize, size)
	}
}

func TestEstimateFee(t *testing.T) {
	fee := EstimateFee(1, 2, 10)
	assert.Equal(t, uint64(2260), fee)

	// more inputs always cost more
	assert.Greater(t, EstimateFee(5, 2, 10), EstimateFee(2, 2, 10))
}
