package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
)

// QueryFactoryRequest asks for the factory settings.
type QueryFactoryRequest struct{}

// QueryFactoryResponse carries the factory settings.
type QueryFactoryResponse struct {
	FeeTo          sdk.AccAddress   `json:"fee_to,omitempty"`
	FeeToSetter    sdk.AccAddress   `json:"fee_to_setter"`
	CriteriaCoins  []sdk.AccAddress `json:"criteria_coins"`
	AllPairsLength uint64           `json:"all_pairs_length"`
	InitCodeHash   string           `json:"init_code_hash"`
	Params         Params           `json:"params"`
}

// QueryPairsRequest lists pairs in creation order.
type QueryPairsRequest struct {
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

// QueryPairsResponse is one page of pairs.
type QueryPairsResponse struct {
	Pairs      []Pair              `json:"pairs"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

// QueryPairRequest looks a pair up by its two tokens, in either order.
type QueryPairRequest struct {
	TokenA string `json:"token_a"`
	TokenB string `json:"token_b"`
}

// QueryPairResponse carries a pair record.
type QueryPairResponse struct {
	Pair Pair `json:"pair"`
}

// QueryQuoteRequest prices AmountA of TokenA in TokenB at the current reserves.
type QueryQuoteRequest struct {
	TokenA  string   `json:"token_a"`
	TokenB  string   `json:"token_b"`
	AmountA math.Int `json:"amount_a"`
}

// QueryQuoteResponse carries a quote.
type QueryQuoteResponse struct {
	AmountB math.Int `json:"amount_b"`
}

// QueryAmountsRequest chains the library over Path for Amount, which is the
// input for amounts-out and the output for amounts-in.
type QueryAmountsRequest struct {
	Amount math.Int `json:"amount"`
	Path   []string `json:"path"`
}

// QueryAmountsResponse lists the amount of every token along the path.
type QueryAmountsResponse struct {
	Amounts []math.Int `json:"amounts"`
}

// QueryLPBalanceRequest asks for the LP shares of Owner in Pair.
type QueryLPBalanceRequest struct {
	Pair  string `json:"pair"`
	Owner string `json:"owner"`
}

// QueryLPBalanceResponse carries an LP balance and the pair's supply.
type QueryLPBalanceResponse struct {
	Balance     math.Int `json:"balance"`
	TotalSupply math.Int `json:"total_supply"`
	Nonce       uint64   `json:"nonce"`
}
