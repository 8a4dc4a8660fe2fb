package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/cpamm/x/amm/keeper"
	"github.com/paw-chain/cpamm/x/amm/types"
)

const bankStoreKey = "bank"

type ammSetup struct {
	storeType  storetypes.StoreType
	config     types.Config
	params     types.Params
	keeperOpts []keeper.Option
}

// AMMOption adjusts the keeper built by AMMKeeper.
type AMMOption func(*ammSetup)

// WithConfig replaces the node-local config.
func WithConfig(cfg types.Config) AMMOption {
	return func(s *ammSetup) { s.config = cfg }
}

// WithParams replaces the genesis params.
func WithParams(params types.Params) AMMOption {
	return func(s *ammSetup) { s.params = params }
}

// WithStoreType mounts the module and bank stores with st. StoreTypeDB
// tolerates concurrent commits from several goroutines; IAVL does not.
func WithStoreType(st storetypes.StoreType) AMMOption {
	return func(s *ammSetup) { s.storeType = st }
}

// WithKeeperOptions forwards options to keeper.NewKeeper.
func WithKeeperOptions(opts ...keeper.Option) AMMOption {
	return func(s *ammSetup) { s.keeperOpts = append(s.keeperOpts, opts...) }
}

// AMMKeeper creates a test keeper for the AMM module over an in-memory
// multistore, backed by a store-backed Bank. Invariants are checked after
// every mutating operation unless the config says otherwise.
func AMMKeeper(t testing.TB, opts ...AMMOption) (keeper.Keeper, sdk.Context, *Bank) {
	setup := ammSetup{
		storeType: storetypes.StoreTypeIAVL,
		config: types.Config{
			MetricsEnabled: true,
			TracingEnabled: true,
			InvariantCheck: true,
		},
		params: types.DefaultParams(),
	}
	for _, opt := range opts {
		opt(&setup)
	}

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	bankKey := storetypes.NewKVStoreKey(bankStoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, setup.storeType, nil)
	stateStore.MountStoreWithDB(bankKey, setup.storeType, nil)
	require.NoError(t, stateStore.LoadLatestVersion())

	bank := NewBank(bankKey)
	k := keeper.NewKeeper(types.ModuleCdc, storeKey, bank, Authority().String(), setup.config, setup.keeperOpts...)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1}, false, log.NewNopLogger())

	genesis := types.DefaultGenesis()
	genesis.Params = setup.params
	require.NoError(t, k.InitGenesis(ctx, *genesis))

	return *k, ctx, bank
}

// Authority returns the gov module account used as the params authority.
func Authority() sdk.AccAddress {
	return ModuleAddress("gov")
}

// TestAddr returns a deterministic account address for index i.
func TestAddr(i int) sdk.AccAddress {
	addr := make([]byte, 20)
	copy(addr, "amm_test_addr_")
	addr[19] = byte(i)
	return sdk.AccAddress(addr)
}

// FundAccount credits addr with the given amounts of each denom.
func FundAccount(t testing.TB, bank *Bank, ctx sdk.Context, addr sdk.AccAddress, coins sdk.Coins) {
	t.Helper()
	require.NoError(t, bank.FundAccount(ctx, addr, coins))
}

// CreateTestPool creates the pool of the canonical pair and seeds it with
// (amountA, amountB) from a freshly funded provider. It returns the pool as
// stored after the deposit and the provider.
func CreateTestPool(t testing.TB, k keeper.Keeper, ctx sdk.Context, bank *Bank, assetA, assetB string, amountA, amountB math.Int) (types.Pool, sdk.AccAddress) {
	t.Helper()

	provider := TestAddr(200)
	_, err := k.CreatePool(ctx, provider, assetA, assetB)
	require.NoError(t, err)

	FundAccount(t, bank, ctx, provider, sdk.NewCoins(sdk.NewCoin(assetA, amountA), sdk.NewCoin(assetB, amountB)))
	_, err = k.AddLiquidity(ctx, provider, assetA, assetB, amountA, amountB)
	require.NoError(t, err)

	pool, err := k.GetPool(ctx, assetA, assetB)
	require.NoError(t, err)
	return *pool, provider
}
