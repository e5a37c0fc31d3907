package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/TokeNest/TokeNest-SmartContract/x/token/types"
)

// InitGenesis initializes the token module's state from a genesis state.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid token genesis state: %w", err)
	}

	k.setTokenCount(ctx, genState.TokenCount)
	for _, t := range genState.Tokens {
		if err := k.SetToken(ctx, t); err != nil {
			return err
		}
	}
	for _, b := range genState.Balances {
		k.setBalance(ctx, b.Token, b.Owner, b.Amount)
	}
	for _, a := range genState.Allowances {
		k.setAllowance(ctx, a.Token, a.Owner, a.Spender, a.Amount)
	}
	return nil
}

// ExportGenesis returns the token module's exported genesis.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	tokens, err := k.GetAllTokens(ctx)
	if err != nil {
		return nil, err
	}

	genesis := types.DefaultGenesis()
	genesis.TokenCount = k.GetTokenCount(ctx)
	genesis.Tokens = append(genesis.Tokens, tokens...)

	for _, t := range tokens {
		err := k.IterateBalances(ctx, t.Address, func(owner sdk.AccAddress, amt math.Int) bool {
			genesis.Balances = append(genesis.Balances, types.Balance{Token: t.Address, Owner: owner, Amount: amt})
			return false
		})
		if err != nil {
			return nil, err
		}
	}

	err = k.IterateAllowances(ctx, func(a types.Allowance) bool {
		genesis.Allowances = append(genesis.Allowances, a)
		return false
	})
	if err != nil {
		return nil, err
	}
	return genesis, nil
}
