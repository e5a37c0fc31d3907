package types

import (
	"bytes"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

// GenesisState is the exported state of the DEX module.
type GenesisState struct {
	Params        Params           `json:"params"`
	FeeTo         sdk.AccAddress   `json:"fee_to,omitempty"`
	FeeToSetter   sdk.AccAddress   `json:"fee_to_setter"`
	CriteriaCoins []sdk.AccAddress `json:"criteria_coins"`
	Pairs         []Pair           `json:"pairs"`
	LPBalances    []LPBalance      `json:"lp_balances"`
	LPAllowances  []LPAllowance    `json:"lp_allowances"`
	LPNonces      []LPNonce        `json:"lp_nonces"`
}

// DefaultGenesis returns the default genesis state for the DEX module. The
// governance module account holds the fee setter role until it hands it over.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:        DefaultParams(),
		FeeToSetter:   authtypes.NewModuleAddress("gov"),
		CriteriaCoins: []sdk.AccAddress{},
		Pairs:         []Pair{},
		LPBalances:    []LPBalance{},
		LPAllowances:  []LPAllowance{},
		LPNonces:      []LPNonce{},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if IsZeroAddress(gs.FeeToSetter) {
		return ErrInvalidAddressParameters.Wrap(ReasonSetterZeroAddress)
	}
	for _, coin := range gs.CriteriaCoins {
		if IsZeroAddress(coin) {
			return ErrInvalidGenesis.Wrap("criteria coin cannot be the zero address")
		}
	}

	pairs := make(map[string]Pair, len(gs.Pairs))
	sets := make(map[string]struct{}, len(gs.Pairs))
	for _, p := range gs.Pairs {
		if err := p.Validate(); err != nil {
			return ErrInvalidGenesis.Wrap(err.Error())
		}
		if _, dup := pairs[p.Address.String()]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate pair %s", p.Address)
		}
		pairs[p.Address.String()] = p

		set := string(PairByTokensKey(p.Token0, p.Token1))
		if bytes.Compare(p.Token1, p.Token0) < 0 {
			set = string(PairByTokensKey(p.Token1, p.Token0))
		}
		if _, dup := sets[set]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate pair for tokens %s/%s", p.Token0, p.Token1)
		}
		sets[set] = struct{}{}
	}

	supply := make(map[string]math.Int, len(gs.Pairs))
	for _, b := range gs.LPBalances {
		if _, ok := pairs[b.Pair.String()]; !ok {
			return ErrInvalidGenesis.Wrapf("lp balance for unknown pair %s", b.Pair)
		}
		if b.Amount.IsNil() || b.Amount.IsNegative() {
			return ErrInvalidGenesis.Wrapf("lp balance of %s must be non-negative", b.Owner)
		}
		if cur, ok := supply[b.Pair.String()]; ok {
			supply[b.Pair.String()] = cur.Add(b.Amount)
		} else {
			supply[b.Pair.String()] = b.Amount
		}
	}
	for addr, p := range pairs {
		total, ok := supply[addr]
		if !ok {
			total = math.ZeroInt()
		}
		want := p.TotalSupply
		if want.IsNil() {
			want = math.ZeroInt()
		}
		if !total.Equal(want) {
			return ErrInvalidGenesis.Wrapf("pair %s: total supply %s does not match balances %s", addr, want, total)
		}
	}

	for _, a := range gs.LPAllowances {
		if _, ok := pairs[a.Pair.String()]; !ok {
			return ErrInvalidGenesis.Wrapf("lp allowance for unknown pair %s", a.Pair)
		}
		if a.Amount.IsNil() || a.Amount.IsNegative() {
			return ErrInvalidGenesis.Wrapf("lp allowance of %s must be non-negative", a.Owner)
		}
	}
	for _, n := range gs.LPNonces {
		if _, ok := pairs[n.Pair.String()]; !ok {
			return ErrInvalidGenesis.Wrapf("lp nonce for unknown pair %s", n.Pair)
		}
	}
	return nil
}
