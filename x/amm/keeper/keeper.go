package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/paw-chain/cpamm/x/amm/types"
)

const tracerName = "github.com/paw-chain/cpamm/x/amm"

// Keeper of the amm store
type Keeper struct {
	storeKey   storetypes.StoreKey
	cdc        *codec.LegacyAmino
	bankKeeper types.BankKeeper
	authority  string
	config     types.Config

	metrics *AMMMetrics
	tracer  trace.Tracer
	locks   *poolLocks
}

// Option customises a Keeper at construction.
type Option func(*Keeper)

// WithTracerProvider sources spans from tp instead of the global provider.
// It has no effect when tracing is disabled in the config.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(k *Keeper) {
		if k.config.TracingEnabled {
			k.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewKeeper creates a new amm Keeper instance
func NewKeeper(
	cdc *codec.LegacyAmino,
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	authority string,
	config types.Config,
	opts ...Option,
) *Keeper {
	k := &Keeper{
		storeKey:   key,
		cdc:        cdc,
		bankKeeper: bankKeeper,
		authority:  authority,
		config:     config,
		tracer:     noop.NewTracerProvider().Tracer(tracerName),
		locks:      newPoolLocks(),
	}
	if config.TracingEnabled {
		k.tracer = otel.Tracer(tracerName)
	}
	if config.MetricsEnabled {
		k.metrics = NewAMMMetrics()
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// GetAuthority returns the address allowed to update the module params,
// usually the gov module account.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// Config returns the node-local settings the keeper was built with.
func (k Keeper) Config() types.Config {
	return k.config
}

// getStore returns the KVStore for the amm module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// atomically runs fn on a cache branch of ctx while holding the lock of the
// pool of (assetA, assetB). Unknown pools fail with ErrPoolNotFound before a
// lock is allocated.
func (k Keeper) atomically(ctx context.Context, assetA, assetB string, fn func(sdk.Context) error) error {
	if !k.HasPool(ctx, assetA, assetB) {
		return types.ErrPoolNotFound.Wrapf("%s/%s", assetA, assetB)
	}

	unlock := k.locks.lock(types.PairKey(assetA, assetB))
	defer unlock()

	return k.commit(ctx, assetA, assetB, fn)
}

// commit writes the branch back, including its events, only if fn succeeds
// and, when configured, the pool's invariants still hold. The caller holds
// the pool lock.
func (k Keeper) commit(ctx context.Context, assetA, assetB string, fn func(sdk.Context) error) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}

	if k.config.InvariantCheck {
		if err := k.checkPool(cacheCtx, assetA, assetB); err != nil {
			k.Logger(sdkCtx).Error("discarding state transition that breaks an invariant", "error", err)
			return err
		}
	}

	write()
	return nil
}
