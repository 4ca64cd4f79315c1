package nickutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFromNicks(t *testing.T) {
	tests := []struct {
		nicks    uint64
		expected string
	}{
		{0, "0"},
		{65536, "1"},
		{32768, "0.5"},
		{98304, "1.5"},
		{1, "0.0000152587890625"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FromNicks(tt.nicks).String())
	}
}

func TestToNicks(t *testing.T) {
	tests := []struct {
		nock     string
		expected uint64
	}{
		{"0", 0},
		{"1", 65536},
		{"0.5", 32768},
		{"2.25", 147456},
	}
	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.nock)
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, ToNicks(d))
	}
}

func TestRoundTrip(t *testing.T) {
	for _, nicks := range []uint64{1, 100, 65536, 1<<32 + 13} {
		assert.Equal(t, nicks, ToNicks(FromNicks(nicks)))
	}
}

func TestSum(t *testing.T) {
	assert.Equal(t, uint64(0), Sum(nil))
	assert.Equal(t, uint64(150), Sum([]uint64{100, 50}))
}
