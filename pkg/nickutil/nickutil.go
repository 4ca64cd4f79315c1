// Package nickutil converts between nicks, the smallest unit of the native
// token, and whole NOCK amounts. 1 NOCK = 65536 nicks.
package nickutil

import (
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	// NicksPerNock is the number of nicks in a single unit of the native token
	NicksPerNock = uint64(1) << 16
)

var nicksPerNockDecimal = decimal.NewFromInt(int64(NicksPerNock))

func init() {
	decimal.DivisionPrecision = 16
}

// FromNicks converts an amount of nicks to its NOCK representation as
// decimal.Decimal
func FromNicks(nicks uint64) decimal.Decimal {
	n := decimal.NewFromBigInt(new(big.Int).SetUint64(nicks), 0)
	return n.Div(nicksPerNockDecimal)
}

// ToNicks converts a NOCK amount to nicks, truncating any fraction smaller
// than one nick
func ToNicks(nock decimal.Decimal) uint64 {
	return nock.Mul(nicksPerNockDecimal).Truncate(0).BigInt().Uint64()
}

// Sum returns the total value of the provided amounts of nicks
func Sum(values []uint64) uint64 {
	var total uint64
	for _, v := range values {
		total += v
	}
	return total
}
