package types

import (
	"math/big"

	"cosmossdk.io/math"
	"github.com/holiman/uint256"
)

// Resolution is the number of fractional bits of a UQ112x112 value.
const Resolution = 112

// MaxReserve is the largest reserve a pair can record (2**112 - 1).
var MaxReserve = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), Resolution), big.NewInt(1)))

// EncodeUQ112x112 encodes y as a UQ112x112 fixed point number.
func EncodeUQ112x112(y math.Int) *uint256.Int {
	z := uint256.MustFromBig(y.BigInt())
	return z.Lsh(z, Resolution)
}

// UQDiv divides a UQ112x112 by an integer, returning a UQ112x112.
func UQDiv(x *uint256.Int, y math.Int) *uint256.Int {
	return new(uint256.Int).Div(x, uint256.MustFromBig(y.BigInt()))
}

// AccumulatePrice adds (numerator/denominator as UQ112x112) * elapsed to
// cumulative. The accumulator wraps modulo 2**256, so consumers must take
// differences between samples.
func AccumulatePrice(cumulative, numerator, denominator math.Int, elapsed uint32) math.Int {
	acc := new(uint256.Int)
	if !cumulative.IsNil() {
		acc = uint256.MustFromBig(cumulative.BigInt())
	}

	price := UQDiv(EncodeUQ112x112(numerator), denominator)
	price.Mul(price, uint256.NewInt(uint64(elapsed)))
	acc.Add(acc, price)
	return math.NewIntFromBigInt(acc.ToBig())
}

// EncodePrice returns the UQ112x112 prices of both sides of a pair, as
// price0 = reserve1/reserve0 and price1 = reserve0/reserve1.
func EncodePrice(reserve0, reserve1 math.Int) (price0, price1 math.Int) {
	p0 := UQDiv(EncodeUQ112x112(reserve1), reserve0)
	p1 := UQDiv(EncodeUQ112x112(reserve0), reserve1)
	return math.NewIntFromBigInt(p0.ToBig()), math.NewIntFromBigInt(p1.ToBig())
}
