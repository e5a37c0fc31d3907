package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

const (
	defaultPaginationLimit = 100
	maxPaginationLimit     = 1000
)

// Querier serves read-only dex queries.
type Querier struct {
	*Keeper
}

// NewQuerier returns a Querier over keeper.
func NewQuerier(keeper *Keeper) Querier {
	return Querier{Keeper: keeper}
}

func parseAddress(field, addr string) (sdk.AccAddress, error) {
	acc, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		return nil, sdkerrors.ErrInvalidAddress.Wrapf("%s: %s", field, err)
	}
	return acc, nil
}

func parsePath(path []string) ([]sdk.AccAddress, error) {
	out := make([]sdk.AccAddress, len(path))
	for i, p := range path {
		addr, err := parseAddress(fmt.Sprintf("path[%d]", i), p)
		if err != nil {
			return nil, err
		}
		out[i] = addr
	}
	return out, nil
}

// Factory returns the factory settings and module params.
func (q Querier) Factory(goCtx context.Context, req *types.QueryFactoryRequest) (*types.QueryFactoryResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	params, err := q.GetParams(goCtx)
	if err != nil {
		return nil, fmt.Errorf("Factory: get params: %w", err)
	}
	return &types.QueryFactoryResponse{
		FeeTo:          q.FeeTo(goCtx),
		FeeToSetter:    q.FeeToSetter(goCtx),
		CriteriaCoins:  q.GetCriteriaCoins(goCtx),
		AllPairsLength: q.AllPairsLength(goCtx),
		InitCodeHash:   types.InitCodeHashHex(),
		Params:         params,
	}, nil
}

// Pairs returns pairs in creation order with pagination.
func (q Querier) Pairs(goCtx context.Context, req *types.QueryPairsRequest) (*types.QueryPairsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	if req.Pagination == nil {
		req.Pagination = &query.PageRequest{Limit: defaultPaginationLimit}
	} else {
		if req.Pagination.Limit == 0 {
			req.Pagination.Limit = defaultPaginationLimit
		}
		if req.Pagination.Limit > maxPaginationLimit {
			req.Pagination.Limit = maxPaginationLimit
		}
	}

	indexStore := prefix.NewStore(q.getStore(goCtx), types.AllPairsKeyPrefix)
	pairs := make([]types.Pair, 0, req.Pagination.Limit)
	pageRes, err := query.Paginate(indexStore, req.Pagination, func(_ []byte, value []byte) error {
		pair, err := q.GetPairRecord(goCtx, sdk.AccAddress(value))
		if err != nil {
			return err
		}
		pairs = append(pairs, pair)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Pairs: paginate: %w", err)
	}

	return &types.QueryPairsResponse{
		Pairs:      pairs,
		Pagination: pageRes,
	}, nil
}

// Pair returns the pair of two tokens.
func (q Querier) Pair(goCtx context.Context, req *types.QueryPairRequest) (*types.QueryPairResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}
	tokenA, err := parseAddress("token_a", req.TokenA)
	if err != nil {
		return nil, err
	}
	tokenB, err := parseAddress("token_b", req.TokenB)
	if err != nil {
		return nil, err
	}

	pair, err := q.pairFor(goCtx, tokenA, tokenB)
	if err != nil {
		return nil, fmt.Errorf("Pair: %s/%s: %w", req.TokenA, req.TokenB, err)
	}
	return &types.QueryPairResponse{Pair: pair}, nil
}

// Quote prices an amount of one token in the other at current reserves.
func (q Querier) Quote(goCtx context.Context, req *types.QueryQuoteRequest) (*types.QueryQuoteResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}
	tokenA, err := parseAddress("token_a", req.TokenA)
	if err != nil {
		return nil, err
	}
	tokenB, err := parseAddress("token_b", req.TokenB)
	if err != nil {
		return nil, err
	}

	reserveA, reserveB, err := q.getReserves(goCtx, tokenA, tokenB)
	if err != nil {
		return nil, err
	}
	amountB, err := types.Quote(req.AmountA, reserveA, reserveB)
	if err != nil {
		return nil, err
	}
	return &types.QueryQuoteResponse{AmountB: amountB}, nil
}

// AmountsOut chains GetAmountOut along a token path.
func (q Querier) AmountsOut(goCtx context.Context, req *types.QueryAmountsRequest) (*types.QueryAmountsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}
	path, err := parsePath(req.Path)
	if err != nil {
		return nil, err
	}

	amounts, err := q.GetAmountsOut(goCtx, req.Amount, path)
	if err != nil {
		return nil, err
	}
	return &types.QueryAmountsResponse{Amounts: amounts}, nil
}

// AmountsIn chains GetAmountIn backwards along a token path.
func (q Querier) AmountsIn(goCtx context.Context, req *types.QueryAmountsRequest) (*types.QueryAmountsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}
	path, err := parsePath(req.Path)
	if err != nil {
		return nil, err
	}

	amounts, err := q.GetAmountsIn(goCtx, req.Amount, path)
	if err != nil {
		return nil, err
	}
	return &types.QueryAmountsResponse{Amounts: amounts}, nil
}

// LPBalance returns the LP position of an owner.
func (q Querier) LPBalance(goCtx context.Context, req *types.QueryLPBalanceRequest) (*types.QueryLPBalanceResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}
	pairAddr, err := parseAddress("pair", req.Pair)
	if err != nil {
		return nil, err
	}
	owner, err := parseAddress("owner", req.Owner)
	if err != nil {
		return nil, err
	}

	supply, err := q.LPTotalSupply(goCtx, pairAddr)
	if err != nil {
		return nil, fmt.Errorf("LPBalance: %w", err)
	}
	return &types.QueryLPBalanceResponse{
		Balance:     q.LPBalanceOf(goCtx, pairAddr, owner),
		TotalSupply: supply,
		Nonce:       q.LPNonce(goCtx, pairAddr, owner),
	}, nil
}

