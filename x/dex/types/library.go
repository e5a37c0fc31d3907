package types

import (
	"bytes"
	"math/big"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	feeNumerator   = big.NewInt(997)
	feeDenominator = big.NewInt(1000)
)

// MaxUint256 is the largest allowance an LP owner can grant. Allowances at
// this value are never decremented.
var MaxUint256 = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)))

// Reserves holds the reserves of one hop, ordered (in, out).
type Reserves struct {
	In  math.Int
	Out math.Int
}

// toInt converts an intermediate result back into a math.Int, failing when it
// no longer fits in 256 bits.
func toInt(x *big.Int) (math.Int, error) {
	if x.BitLen() > math.MaxBitLen {
		return math.Int{}, ErrOverflow.Wrap(ReasonOverflow)
	}
	return math.NewIntFromBigInt(x), nil
}

func isPositive(x math.Int) bool {
	return !x.IsNil() && x.IsPositive()
}

// Quote returns the amount of B equivalent to amountA at the given reserves.
func Quote(amountA, reserveA, reserveB math.Int) (math.Int, error) {
	if !isPositive(amountA) {
		return math.Int{}, ErrInsufficientAmount.Wrap(ReasonLibraryInsufficientAmount)
	}
	if !isPositive(reserveA) || !isPositive(reserveB) {
		return math.Int{}, ErrInsufficientLiquidity.Wrap(ReasonLibraryInsufficientLiq)
	}

	amountB := new(big.Int).Mul(amountA.BigInt(), reserveB.BigInt())
	amountB.Quo(amountB, reserveA.BigInt())
	return toInt(amountB)
}

// GetAmountOut returns the maximum output for amountIn after the 0.3% fee.
func GetAmountOut(amountIn, reserveIn, reserveOut math.Int) (math.Int, error) {
	if !isPositive(amountIn) {
		return math.Int{}, ErrInsufficientInputAmount.Wrap(ReasonLibraryInsufficientInput)
	}
	if !isPositive(reserveIn) || !isPositive(reserveOut) {
		return math.Int{}, ErrInsufficientLiquidity.Wrap(ReasonLibraryInsufficientLiq)
	}

	amountInWithFee := new(big.Int).Mul(amountIn.BigInt(), feeNumerator)
	numerator := new(big.Int).Mul(amountInWithFee, reserveOut.BigInt())
	denominator := new(big.Int).Mul(reserveIn.BigInt(), feeDenominator)
	denominator.Add(denominator, amountInWithFee)
	return toInt(numerator.Quo(numerator, denominator))
}

// GetAmountIn returns the minimum input needed to receive amountOut, rounded up.
func GetAmountIn(amountOut, reserveIn, reserveOut math.Int) (math.Int, error) {
	if !isPositive(amountOut) {
		return math.Int{}, ErrInsufficientOutputAmount.Wrap(ReasonLibraryInsufficientOutput)
	}
	if !isPositive(reserveIn) || !isPositive(reserveOut) || amountOut.GTE(reserveOut) {
		return math.Int{}, ErrInsufficientLiquidity.Wrap(ReasonLibraryInsufficientLiq)
	}

	numerator := new(big.Int).Mul(reserveIn.BigInt(), amountOut.BigInt())
	numerator.Mul(numerator, feeDenominator)
	denominator := new(big.Int).Sub(reserveOut.BigInt(), amountOut.BigInt())
	denominator.Mul(denominator, feeNumerator)

	amountIn, rem := new(big.Int).QuoRem(numerator, denominator, new(big.Int))
	if rem.Sign() != 0 {
		amountIn.Add(amountIn, big.NewInt(1))
	}
	return toInt(amountIn)
}

// GetAmountsOut chains GetAmountOut over every hop. The result has one entry
// per token on the path, starting with amountIn.
func GetAmountsOut(amountIn math.Int, hops []Reserves) ([]math.Int, error) {
	if len(hops) < 1 {
		return nil, ErrInvalidPath.Wrap(ReasonLibraryInvalidPath)
	}

	amounts := make([]math.Int, len(hops)+1)
	amounts[0] = amountIn
	for i, hop := range hops {
		out, err := GetAmountOut(amounts[i], hop.In, hop.Out)
		if err != nil {
			return nil, err
		}
		amounts[i+1] = out
	}
	return amounts, nil
}

// GetAmountsIn chains GetAmountIn backwards over every hop. The result has one
// entry per token on the path, ending with amountOut.
func GetAmountsIn(amountOut math.Int, hops []Reserves) ([]math.Int, error) {
	if len(hops) < 1 {
		return nil, ErrInvalidPath.Wrap(ReasonLibraryInvalidPath)
	}

	amounts := make([]math.Int, len(hops)+1)
	amounts[len(amounts)-1] = amountOut
	for i := len(hops) - 1; i >= 0; i-- {
		in, err := GetAmountIn(amounts[i+1], hops[i].In, hops[i].Out)
		if err != nil {
			return nil, err
		}
		amounts[i] = in
	}
	return amounts, nil
}

// Sqrt returns floor(sqrt(y)) using the Babylonian method.
func Sqrt(y math.Int) math.Int {
	if y.IsNil() || !y.IsPositive() {
		return math.ZeroInt()
	}
	if y.LTE(math.NewInt(3)) {
		return math.OneInt()
	}

	yb := y.BigInt()
	two := big.NewInt(2)
	z := new(big.Int).Set(yb)
	x := new(big.Int).Quo(yb, two)
	x.Add(x, big.NewInt(1))
	for x.Cmp(z) < 0 {
		z.Set(x)
		x.Quo(yb, x)
		x.Add(x, z)
		x.Quo(x, two)
	}
	return math.NewIntFromBigInt(z)
}

// Min returns the smaller of a and b.
func Min(a, b math.Int) math.Int {
	if a.LT(b) {
		return a
	}
	return b
}

// SortTokens orders two tokens by address bytes.
func SortTokens(tokenA, tokenB sdk.AccAddress) (token0, token1 sdk.AccAddress, err error) {
	if tokenA.Equals(tokenB) {
		return nil, nil, ErrInvalidAddressParameters.Wrap(ReasonIdenticalAddresses)
	}
	if bytes.Compare(tokenA, tokenB) < 0 {
		token0, token1 = tokenA, tokenB
	} else {
		token0, token1 = tokenB, tokenA
	}
	if IsZeroAddress(token0) || IsZeroAddress(token1) {
		return nil, nil, ErrInvalidAddressParameters.Wrap(ReasonZeroAddress)
	}
	return token0, token1, nil
}
