package simapp

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/std"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authcodec "github.com/cosmos/cosmos-sdk/x/auth/codec"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktestutil "github.com/cosmos/cosmos-sdk/x/bank/testutil"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	minttypes "github.com/cosmos/cosmos-sdk/x/mint/types"

	dexkeeper "github.com/TokeNest/TokeNest-SmartContract/x/dex/keeper"
	dextypes "github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
	tokenkeeper "github.com/TokeNest/TokeNest-SmartContract/x/token/keeper"
	tokentypes "github.com/TokeNest/TokeNest-SmartContract/x/token/types"
)

const (
	// Bech32Prefix is the account address prefix of the chain.
	Bech32Prefix = "tokenest"

	// DefaultChainID is the chain id used when none is configured.
	DefaultChainID = "tokenest-1"
)

// maccPerms are the module accounts the app creates. The mint account only
// funds accounts in tests and local networks.
var maccPerms = map[string][]string{
	minttypes.ModuleName: {authtypes.Minter},
}

// App wires the token and dex keepers over the SDK auth and bank keepers on a
// single multistore.
type App struct {
	cms    storetypes.CommitMultiStore
	logger log.Logger
	keys   map[string]*storetypes.KVStoreKey

	Codec codec.Codec

	AccountKeeper authkeeper.AccountKeeper
	BankKeeper    bankkeeper.BaseKeeper
	TokenKeeper   tokenkeeper.Keeper
	DexKeeper     *dexkeeper.Keeper
}

// New creates an App over db and loads its latest version.
func New(logger log.Logger, db dbm.DB) (*App, error) {
	keys := storetypes.NewKVStoreKeys(
		authtypes.StoreKey,
		banktypes.StoreKey,
		tokentypes.StoreKey,
		dextypes.StoreKey,
	)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	registry := codectypes.NewInterfaceRegistry()
	std.RegisterInterfaces(registry)
	authtypes.RegisterInterfaces(registry)
	banktypes.RegisterInterfaces(registry)
	cdc := codec.NewProtoCodec(registry)

	authority := sdk.MustBech32ifyAddressBytes(Bech32Prefix, authtypes.NewModuleAddress("gov"))
	accountKeeper := authkeeper.NewAccountKeeper(
		cdc,
		runtime.NewKVStoreService(keys[authtypes.StoreKey]),
		authtypes.ProtoBaseAccount,
		maccPerms,
		authcodec.NewBech32Codec(Bech32Prefix),
		Bech32Prefix,
		authority,
	)
	bankKeeper := bankkeeper.NewBaseKeeper(
		cdc,
		runtime.NewKVStoreService(keys[banktypes.StoreKey]),
		accountKeeper,
		map[string]bool{},
		authority,
		logger,
	)
	tokenKeeper := tokenkeeper.NewKeeper(keys[tokentypes.StoreKey], bankKeeper)
	dexKeeper := dexkeeper.NewKeeper(keys[dextypes.StoreKey], bankKeeper, tokenKeeper)

	return &App{
		cms:           cms,
		logger:        logger,
		keys:          keys,
		Codec:         cdc,
		AccountKeeper: accountKeeper,
		BankKeeper:    bankKeeper,
		TokenKeeper:   tokenKeeper,
		DexKeeper:     dexKeeper,
	}, nil
}

// NewContext returns a context over the working state of the app.
func (app *App) NewContext(chainID string, blockTime time.Time) sdk.Context {
	header := cmtproto.Header{
		ChainID: chainID,
		Height:  app.cms.LastCommitID().Version + 1,
		Time:    blockTime,
	}
	return sdk.NewContext(app.cms, header, false, app.logger)
}

// InitChain writes module genesis states. Bank and auth start from their
// defaults.
func (app *App) InitChain(ctx context.Context, tokenGenesis tokentypes.GenesisState, dexGenesis dextypes.GenesisState) error {
	if err := app.initSDKParams(ctx); err != nil {
		return err
	}
	if err := app.TokenKeeper.InitGenesis(ctx, tokenGenesis); err != nil {
		return fmt.Errorf("failed to init token genesis: %w", err)
	}
	if err := app.DexKeeper.InitGenesis(ctx, dexGenesis); err != nil {
		return fmt.Errorf("failed to init dex genesis: %w", err)
	}
	return nil
}

func (app *App) initSDKParams(ctx context.Context) error {
	if err := app.AccountKeeper.Params.Set(ctx, authtypes.DefaultParams()); err != nil {
		return fmt.Errorf("failed to set auth params: %w", err)
	}
	if err := app.BankKeeper.SetParams(ctx, banktypes.DefaultParams()); err != nil {
		return fmt.Errorf("failed to set bank params: %w", err)
	}
	return nil
}

// Commit persists the working state and returns the new version.
func (app *App) Commit() int64 {
	return app.cms.Commit().Version
}

// FundAccount mints native coins of denom to addr.
func (app *App) FundAccount(ctx context.Context, addr sdk.AccAddress, denom string, amount math.Int) error {
	return banktestutil.FundAccount(ctx, app.BankKeeper, addr, sdk.NewCoins(sdk.NewCoin(denom, amount)))
}

// Setup creates an in-memory App with default genesis and the wrapped native
// token registered for the dex router.
func Setup(chainID string, blockTime time.Time) (*App, sdk.Context, error) {
	app, err := New(log.NewNopLogger(), dbm.NewMemDB())
	if err != nil {
		return nil, sdk.Context{}, err
	}
	ctx := app.NewContext(chainID, blockTime)

	dexGenesis := dextypes.DefaultGenesis()
	if err := app.InitChain(ctx, *tokentypes.DefaultGenesis(), *dexGenesis); err != nil {
		return nil, sdk.Context{}, err
	}

	wrapped, err := app.TokenKeeper.CreateWrappedNative(ctx, dextypes.FactoryAddress, dexGenesis.Params.NativeDenom)
	if err != nil {
		return nil, sdk.Context{}, err
	}
	params := dexGenesis.Params
	params.WrappedNative = wrapped
	if err := app.DexKeeper.SetParams(ctx, params); err != nil {
		return nil, sdk.Context{}, err
	}
	return app, ctx, nil
}
