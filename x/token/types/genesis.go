package types

import (
	"cosmossdk.io/math"
)

// GenesisState is the exported state of the token module.
type GenesisState struct {
	TokenCount uint64      `json:"token_count"`
	Tokens     []Token     `json:"tokens"`
	Balances   []Balance   `json:"balances"`
	Allowances []Allowance `json:"allowances"`
}

// DefaultGenesis returns an empty token ledger.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Tokens:     []Token{},
		Balances:   []Balance{},
		Allowances: []Allowance{},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if uint64(len(gs.Tokens)) > gs.TokenCount {
		return ErrInvalidGenesis.Wrapf("token count %d is below the number of tokens %d", gs.TokenCount, len(gs.Tokens))
	}

	tokens := make(map[string]Token, len(gs.Tokens))
	for _, t := range gs.Tokens {
		if err := t.Validate(); err != nil {
			return ErrInvalidGenesis.Wrap(err.Error())
		}
		if _, dup := tokens[t.Address.String()]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate token %s", t.Address)
		}
		tokens[t.Address.String()] = t
	}

	supply := make(map[string]math.Int, len(gs.Tokens))
	for _, b := range gs.Balances {
		if _, ok := tokens[b.Token.String()]; !ok {
			return ErrInvalidGenesis.Wrapf("balance for unknown token %s", b.Token)
		}
		if b.Amount.IsNil() || b.Amount.IsNegative() {
			return ErrInvalidGenesis.Wrapf("balance of %s must be non-negative", b.Owner)
		}
		cur, ok := supply[b.Token.String()]
		if !ok {
			cur = math.ZeroInt()
		}
		supply[b.Token.String()] = cur.Add(b.Amount)
	}
	for addr, t := range tokens {
		total, ok := supply[addr]
		if !ok {
			total = math.ZeroInt()
		}
		if !total.Equal(t.TotalSupply) {
			return ErrInvalidGenesis.Wrapf("token %s: total supply %s does not match balances %s", addr, t.TotalSupply, total)
		}
	}

	for _, a := range gs.Allowances {
		if _, ok := tokens[a.Token.String()]; !ok {
			return ErrInvalidGenesis.Wrapf("allowance for unknown token %s", a.Token)
		}
		if a.Amount.IsNil() || a.Amount.IsNegative() {
			return ErrInvalidGenesis.Wrapf("allowance of %s must be non-negative", a.Owner)
		}
	}
	return nil
}
