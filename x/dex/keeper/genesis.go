package keeper

import (
	"context"
	"fmt"

	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

// InitGenesis initializes the dex module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid genesis: %w", err)
	}

	// Set parameters
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	// Factory roles
	if err := k.InitFactory(ctx, genState.FeeToSetter); err != nil {
		return fmt.Errorf("failed to set fee setter: %w", err)
	}
	if !types.IsZeroAddress(genState.FeeTo) {
		k.getStore(ctx).Set(types.FeeToKey, genState.FeeTo)
	}
	k.setCriteriaCoins(ctx, genState.CriteriaCoins)

	// Pairs keep their creation order
	store := k.getStore(ctx)
	for i, pair := range genState.Pairs {
		k.SetPairRecord(ctx, pair)
		store.Set(types.AllPairsKey(uint64(i)), pair.Address)
		if pair.Initialized {
			store.Set(types.PairByTokensKey(pair.Token0, pair.Token1), pair.Address)
			store.Set(types.PairByTokensKey(pair.Token1, pair.Token0), pair.Address)
		}
	}
	k.setAllPairsLength(ctx, uint64(len(genState.Pairs)))

	// LP ledgers
	for _, b := range genState.LPBalances {
		k.setLPBalance(ctx, b.Pair, b.Owner, b.Amount)
	}
	for _, a := range genState.LPAllowances {
		k.setLPAllowance(ctx, a.Pair, a.Owner, a.Spender, a.Amount)
	}
	for _, n := range genState.LPNonces {
		k.setLPNonce(ctx, n.Pair, n.Owner, n.Nonce)
	}

	k.metrics.PairsTotal.Set(float64(len(genState.Pairs)))
	k.metrics.CriteriaCoinsSize.Set(float64(len(genState.CriteriaCoins)))
	return nil
}

// ExportGenesis returns the dex module's exported genesis
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get params: %w", err)
	}

	genesis := types.DefaultGenesis()
	genesis.Params = params
	genesis.FeeTo = k.FeeTo(ctx)
	genesis.FeeToSetter = k.FeeToSetter(ctx)
	genesis.CriteriaCoins = k.GetCriteriaCoins(ctx)

	n := k.AllPairsLength(ctx)
	for i := uint64(0); i < n; i++ {
		addr, err := k.AllPairs(ctx, i)
		if err != nil {
			return nil, err
		}
		pair, err := k.GetPairRecord(ctx, addr)
		if err != nil {
			return nil, err
		}
		genesis.Pairs = append(genesis.Pairs, pair)
	}

	k.IterateLPBalances(ctx, func(b types.LPBalance) bool {
		genesis.LPBalances = append(genesis.LPBalances, b)
		return false
	})
	k.IterateLPAllowances(ctx, func(a types.LPAllowance) bool {
		genesis.LPAllowances = append(genesis.LPAllowances, a)
		return false
	})
	k.IterateLPNonces(ctx, func(n types.LPNonce) bool {
		genesis.LPNonces = append(genesis.LPNonces, n)
		return false
	})
	return genesis, nil
}
