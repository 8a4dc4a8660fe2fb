package keeper

import (
	"context"
	"fmt"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// InitGenesis initializes the amm module's state from a genesis state. Vault
// records are rebuilt from the pool reserves; the matching coins are expected
// at the vault addresses in the bank genesis.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return err
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	for _, pool := range genState.Pools {
		if k.HasPool(ctx, pool.AssetA, pool.AssetB) {
			return types.ErrPoolAlreadyExists.Wrapf("pool %s", pool.Name())
		}
		if err := k.setPool(ctx, pool); err != nil {
			return fmt.Errorf("failed to set pool %s: %w", pool.Name(), err)
		}

		vaultA := types.NewVault(pool, pool.AssetA)
		vaultA.Balance = pool.ReserveA
		vaultB := types.NewVault(pool, pool.AssetB)
		vaultB.Balance = pool.ReserveB
		for _, vault := range []types.Vault{vaultA, vaultB} {
			if err := k.setVault(ctx, pool, vault); err != nil {
				return fmt.Errorf("failed to set %s vault of pool %s: %w", vault.Asset, pool.Name(), err)
			}
		}
	}
	k.setPoolCount(ctx, uint64(len(genState.Pools)))

	return nil
}

// ExportGenesis returns the amm module's exported genesis.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get params: %w", err)
	}

	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pools: %w", err)
	}

	return &types.GenesisState{
		Params: params,
		Pools:  pools,
	}, nil
}
