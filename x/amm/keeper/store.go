package keeper

import (
	"context"
	"encoding/binary"
	"fmt"

	storetypes "cosmossdk.io/store/types"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// GetPool returns the pool stored under the canonical pair (assetA, assetB).
// Returns ErrPoolNotFound if no pool was created for it.
func (k Keeper) GetPool(ctx context.Context, assetA, assetB string) (*types.Pool, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.PoolKey(assetA, assetB))
	if bz == nil {
		return nil, types.ErrPoolNotFound.Wrapf("%s/%s", assetA, assetB)
	}

	var pool types.Pool
	if err := k.cdc.Unmarshal(bz, &pool); err != nil {
		return nil, fmt.Errorf("GetPool: unmarshal pool %s/%s: %w", assetA, assetB, err)
	}
	return &pool, nil
}

// GetPoolByAssets returns the pool of an unordered pair.
func (k Keeper) GetPoolByAssets(ctx context.Context, x, y string) (*types.Pool, error) {
	assetA, assetB := types.SortAssets(x, y)
	return k.GetPool(ctx, assetA, assetB)
}

// HasPool reports whether a pool exists for the canonical pair.
func (k Keeper) HasPool(ctx context.Context, assetA, assetB string) bool {
	return k.getStore(ctx).Has(types.PoolKey(assetA, assetB))
}

// loadPool resolves the pool an engine operation targets. Identity errors
// are reported before the store is read.
func (k Keeper) loadPool(ctx context.Context, assetA, assetB string) (types.Pool, error) {
	if err := types.ValidatePair(assetA, assetB); err != nil {
		return types.Pool{}, err
	}
	pool, err := k.GetPool(ctx, assetA, assetB)
	if err != nil {
		return types.Pool{}, err
	}
	return *pool, nil
}

// setPool writes the reserve ledger entry of a pool.
func (k Keeper) setPool(ctx context.Context, pool types.Pool) error {
	bz, err := k.cdc.Marshal(pool)
	if err != nil {
		return fmt.Errorf("setPool: marshal pool %s: %w", pool.Name(), err)
	}
	k.getStore(ctx).Set(types.PoolKey(pool.AssetA, pool.AssetB), bz)
	return nil
}

// IteratePools iterates over all pools in canonical key order. The callback
// must not write to the store.
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := k.cdc.Unmarshal(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("IteratePools: unmarshal pool: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns every pool.
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	pools := make([]types.Pool, 0, k.GetPoolCount(ctx))
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools, err
}

// countPools counts the stored pool records without decoding them.
func (k Keeper) countPools(ctx context.Context) uint64 {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PoolKeyPrefix)
	defer iterator.Close()

	var n uint64
	for ; iterator.Valid(); iterator.Next() {
		n++
	}
	return n
}

// GetPoolCount returns the number of registered pools in O(1).
func (k Keeper) GetPoolCount(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.PoolCountKey)
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

func (k Keeper) setPoolCount(ctx context.Context, count uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, count)
	k.getStore(ctx).Set(types.PoolCountKey, bz)
}
