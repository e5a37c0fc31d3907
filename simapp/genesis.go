package simapp

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"

	"github.com/TokeNest/TokeNest-SmartContract/x/dex"
	"github.com/TokeNest/TokeNest-SmartContract/x/token"
)

// AppGenesis maps module names to their JSON genesis state.
type AppGenesis map[string]json.RawMessage

type genesisBasic interface {
	module.HasName
	module.HasGenesisBasics
}

// basicModules lists the genesis modules in initialization order. Dex state
// references token balances, so tokens load first.
var basicModules = []genesisBasic{
	token.AppModuleBasic{},
	dex.AppModuleBasic{},
}

// DefaultAppGenesis returns the default genesis of every module.
func DefaultAppGenesis(cdc codec.JSONCodec) AppGenesis {
	gen := make(AppGenesis, len(basicModules))
	for _, m := range basicModules {
		gen[m.Name()] = m.DefaultGenesis(cdc)
	}
	return gen
}

// ValidateAppGenesis validates the state of every module. A missing module
// is an error.
func ValidateAppGenesis(cdc codec.JSONCodec, gen AppGenesis) error {
	for _, m := range basicModules {
		bz, ok := gen[m.Name()]
		if !ok {
			return fmt.Errorf("missing %s genesis state", m.Name())
		}
		if err := m.ValidateGenesis(cdc, nil, bz); err != nil {
			return fmt.Errorf("invalid %s genesis state: %w", m.Name(), err)
		}
	}
	return nil
}

func (app *App) genesisModules() []module.HasGenesis {
	return []module.HasGenesis{
		token.NewAppModule(app.TokenKeeper),
		dex.NewAppModule(app.DexKeeper),
	}
}

// InitChainFromGenesis validates gen and loads it into every module.
func (app *App) InitChainFromGenesis(ctx sdk.Context, gen AppGenesis) (err error) {
	if err := ValidateAppGenesis(app.Codec, gen); err != nil {
		return err
	}
	if err := app.initSDKParams(ctx); err != nil {
		return err
	}

	// module InitGenesis panics on failure
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("init genesis: %v", r)
		}
	}()
	for _, m := range app.genesisModules() {
		m.InitGenesis(ctx, app.Codec, gen[m.(module.HasName).Name()])
	}
	return nil
}

// ExportAppGenesis exports the state of every module.
func (app *App) ExportAppGenesis(ctx sdk.Context) (gen AppGenesis, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("export genesis: %v", r)
		}
	}()
	gen = make(AppGenesis)
	for _, m := range app.genesisModules() {
		gen[m.(module.HasName).Name()] = m.ExportGenesis(ctx, app.Codec)
	}
	return gen, nil
}

// invariantRegistry collects module invariants by route.
type invariantRegistry struct {
	routes map[string]sdk.Invariant
}

func (ir *invariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	ir.routes[moduleName+"/"+route] = invar
}

// InvariantRoutes returns the routes of every registered invariant in order.
func (app *App) InvariantRoutes() []string {
	ir := app.invariants()
	routes := make([]string, 0, len(ir.routes))
	for route := range ir.routes {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	return routes
}

func (app *App) invariants() *invariantRegistry {
	ir := &invariantRegistry{routes: make(map[string]sdk.Invariant)}
	dex.NewAppModule(app.DexKeeper).RegisterInvariants(ir)
	return ir
}

// AssertInvariants runs every registered invariant and reports the first
// broken one.
func (app *App) AssertInvariants(ctx sdk.Context) error {
	ir := app.invariants()
	for _, route := range app.InvariantRoutes() {
		if msg, broken := ir.routes[route](ctx); broken {
			return fmt.Errorf("invariant %s broken: %s", route, msg)
		}
	}
	return nil
}
