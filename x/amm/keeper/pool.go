package keeper

import (
	"context"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel/attribute"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// CreatePool registers the pool of the canonical pair (assetA, assetB)
// together with its two empty vaults and its share denom. The pair must
// already be ordered: ErrUnorderedAssets is returned otherwise, so every
// unordered pair maps to exactly one pool. Returns ErrPoolAlreadyExists for
// a known pair and ErrMaxPoolsReached at the registry limit.
func (k Keeper) CreatePool(goCtx context.Context, creator sdk.AccAddress, assetA, assetB string) (_ *types.Pool, err error) {
	start := time.Now()
	goCtx, span := k.startSpan(goCtx, "CreatePool",
		attribute.String("asset_a", assetA),
		attribute.String("asset_b", assetB),
	)
	defer func() {
		k.metrics.observe(opCreatePool, start, err)
		endSpan(span, err)
	}()

	// 1. Identity checks, before any state is read
	if err := types.ValidatePair(assetA, assetB); err != nil {
		return nil, err
	}
	pool := types.NewPool(assetA, assetB)

	// 2. Registry checks, under the registry lock
	unlock := k.locks.lockRegistry()
	defer unlock()

	if k.HasPool(goCtx, assetA, assetB) {
		return nil, types.ErrPoolAlreadyExists.Wrapf("pool %s", pool.Name())
	}
	unlockPool := k.locks.lock(pool.Key())
	defer unlockPool()

	var count uint64
	err = k.commit(goCtx, assetA, assetB, func(ctx sdk.Context) error {
		params, err := k.GetParams(ctx)
		if err != nil {
			return err
		}
		count = k.GetPoolCount(ctx)
		if params.MaxPools > 0 && count >= params.MaxPools {
			return types.ErrMaxPoolsReached.Wrapf("maximum number of pools (%d) reached", params.MaxPools)
		}
		if params.MaxPools > 0 && count+1 > params.MaxPools*9/10 {
			k.Logger(ctx).Info("amm pool count approaching limit", "current", count+1, "max", params.MaxPools)
		}

		// 3. Allocate the ledger entry and both vaults
		if err := k.setPool(ctx, pool); err != nil {
			return err
		}
		for _, asset := range []string{pool.AssetA, pool.AssetB} {
			if err := k.setVault(ctx, pool, types.NewVault(pool, asset)); err != nil {
				return err
			}
		}
		count++
		k.setPoolCount(ctx, count)
		if k.config.InvariantCheck {
			if stored := k.countPools(ctx); stored != count {
				return types.ErrInvariantViolation.Wrapf("pool counter %d but %d pools stored", count, stored)
			}
		}

		ctx.EventManager().EmitEvents(sdk.Events{
			sdk.NewEvent(
				types.EventTypePoolCreated,
				sdk.NewAttribute(types.AttributeKeyPool, pool.Name()),
				sdk.NewAttribute(types.AttributeKeyAssetA, pool.AssetA),
				sdk.NewAttribute(types.AttributeKeyAssetB, pool.AssetB),
				sdk.NewAttribute(types.AttributeKeyShareDenom, pool.ShareDenom),
				sdk.NewAttribute(types.AttributeKeyAuthority, pool.Authority.String()),
				sdk.NewAttribute(types.AttributeKeyCreator, creator.String()),
			),
			sdk.NewEvent(
				sdk.EventTypeMessage,
				sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
				sdk.NewAttribute(sdk.AttributeKeySender, creator.String()),
			),
		})
		return nil
	})
	if err != nil {
		k.locks.forget(pool.Key())
		return nil, err
	}

	k.Logger(goCtx).Info("amm pool created", "pool", pool.Name(), "share_denom", pool.ShareDenom, "creator", creator.String())
	k.metrics.poolCreated(count)
	return &pool, nil
}
