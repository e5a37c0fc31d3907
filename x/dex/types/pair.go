package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Default LP token metadata used when a pair is created without a name or symbol.
const (
	DefaultLPName   = "DEXswap"
	DefaultLPSymbol = "KlayLP"
)

// LPDecimals is the decimals of every LP token.
const LPDecimals uint32 = 18

// Pair is the persisted state of one trading pair and its LP token.
type Pair struct {
	Address              sdk.AccAddress `json:"address"`
	Factory              sdk.AccAddress `json:"factory"`
	Token0               sdk.AccAddress `json:"token0"`
	Token1               sdk.AccAddress `json:"token1"`
	Reserve0             math.Int       `json:"reserve0"`
	Reserve1             math.Int       `json:"reserve1"`
	BlockTimestampLast   uint32         `json:"block_timestamp_last"`
	Price0CumulativeLast math.Int       `json:"price0_cumulative_last"`
	Price1CumulativeLast math.Int       `json:"price1_cumulative_last"`
	KLast                math.Int       `json:"k_last"`
	TotalSupply          math.Int       `json:"total_supply"`
	Name                 string         `json:"name"`
	Symbol               string         `json:"symbol"`
	Initialized          bool           `json:"initialized"`
}

// NewPair returns an uninitialized pair deployed by factory at addr.
func NewPair(addr, factory sdk.AccAddress, name, symbol string) Pair {
	if name == "" {
		name = DefaultLPName
	}
	if symbol == "" {
		symbol = DefaultLPSymbol
	}
	return Pair{
		Address:              addr,
		Factory:              factory,
		Reserve0:             math.ZeroInt(),
		Reserve1:             math.ZeroInt(),
		Price0CumulativeLast: math.ZeroInt(),
		Price1CumulativeLast: math.ZeroInt(),
		KLast:                math.ZeroInt(),
		TotalSupply:          math.ZeroInt(),
		Name:                 name,
		Symbol:               symbol,
	}
}

// Has reports whether token is one of the pair's two tokens.
func (p Pair) Has(token sdk.AccAddress) bool {
	return p.Token0.Equals(token) || p.Token1.Equals(token)
}

// ReservesFor returns the pair reserves ordered (tokenIn, other).
func (p Pair) ReservesFor(tokenIn sdk.AccAddress) Reserves {
	if p.Token0.Equals(tokenIn) {
		return Reserves{In: p.Reserve0, Out: p.Reserve1}
	}
	return Reserves{In: p.Reserve1, Out: p.Reserve0}
}

// Validate checks the stored invariants of a pair record.
func (p Pair) Validate() error {
	if IsZeroAddress(p.Address) {
		return fmt.Errorf("pair address cannot be empty")
	}
	if !p.Initialized {
		return nil
	}
	if IsZeroAddress(p.Token0) || IsZeroAddress(p.Token1) || p.Token0.Equals(p.Token1) {
		return fmt.Errorf("pair %s: invalid tokens", p.Address)
	}
	for name, v := range map[string]math.Int{
		"reserve0":     p.Reserve0,
		"reserve1":     p.Reserve1,
		"k_last":       p.KLast,
		"total_supply": p.TotalSupply,
	} {
		if v.IsNil() || v.IsNegative() {
			return fmt.Errorf("pair %s: %s must be non-negative", p.Address, name)
		}
	}
	if p.Reserve0.GT(MaxReserve) || p.Reserve1.GT(MaxReserve) {
		return fmt.Errorf("pair %s: reserves exceed uint112", p.Address)
	}
	return nil
}

// LPBalance is an LP share balance, used in genesis.
type LPBalance struct {
	Pair   sdk.AccAddress `json:"pair"`
	Owner  sdk.AccAddress `json:"owner"`
	Amount math.Int       `json:"amount"`
}

// LPAllowance is an LP share allowance, used in genesis.
type LPAllowance struct {
	Pair    sdk.AccAddress `json:"pair"`
	Owner   sdk.AccAddress `json:"owner"`
	Spender sdk.AccAddress `json:"spender"`
	Amount  math.Int       `json:"amount"`
}

// LPNonce is a permit nonce, used in genesis.
type LPNonce struct {
	Pair  sdk.AccAddress `json:"pair"`
	Owner sdk.AccAddress `json:"owner"`
	Nonce uint64         `json:"nonce"`
}
