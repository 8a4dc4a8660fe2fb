package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// vaultAuthority is the capability that authorises moving coins out of a
// pool's vaults. It can only be obtained from poolAuthority, so nothing
// outside this package can forge one.
type vaultAuthority struct {
	pairKey string
	address sdk.AccAddress
}

// poolAuthority mints the vault capability of pool. Only the liquidity and
// swap engines call it.
func (k Keeper) poolAuthority(pool types.Pool) vaultAuthority {
	return vaultAuthority{
		pairKey: string(pool.Key()),
		address: pool.Authority,
	}
}

func (a vaultAuthority) authorizes(pool types.Pool) bool {
	return a.pairKey == string(pool.Key()) && a.address.Equals(pool.Authority)
}

// GetVault returns the custody record of asset in pool.
func (k Keeper) GetVault(ctx context.Context, pool types.Pool, asset string) (types.Vault, error) {
	if !pool.HasAsset(asset) {
		return types.Vault{}, types.ErrInvalidAsset.Wrapf("%s is not part of pool %s", asset, pool.Name())
	}

	bz := k.getStore(ctx).Get(types.VaultKey(pool.Key(), asset))
	if bz == nil {
		return types.Vault{}, types.ErrPoolNotFound.Wrapf("no %s vault for pool %s", asset, pool.Name())
	}

	var vault types.Vault
	if err := k.cdc.Unmarshal(bz, &vault); err != nil {
		return types.Vault{}, fmt.Errorf("GetVault: unmarshal %s vault of %s: %w", asset, pool.Name(), err)
	}
	return vault, nil
}

// GetVaults returns both custody records of pool, A side first.
func (k Keeper) GetVaults(ctx context.Context, pool types.Pool) (types.Vault, types.Vault, error) {
	vaultA, err := k.GetVault(ctx, pool, pool.AssetA)
	if err != nil {
		return types.Vault{}, types.Vault{}, err
	}
	vaultB, err := k.GetVault(ctx, pool, pool.AssetB)
	if err != nil {
		return types.Vault{}, types.Vault{}, err
	}
	return vaultA, vaultB, nil
}

func (k Keeper) setVault(ctx context.Context, pool types.Pool, vault types.Vault) error {
	bz, err := k.cdc.Marshal(vault)
	if err != nil {
		return fmt.Errorf("setVault: marshal %s vault of %s: %w", vault.Asset, pool.Name(), err)
	}
	k.getStore(ctx).Set(types.VaultKey(pool.Key(), vault.Asset), bz)
	return nil
}

// iterateVaults walks every vault record of every pool.
func (k Keeper) iterateVaults(ctx context.Context, cb func(vault types.Vault) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.VaultKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var vault types.Vault
		if err := k.cdc.Unmarshal(iterator.Value(), &vault); err != nil {
			return fmt.Errorf("iterateVaults: unmarshal vault: %w", err)
		}
		if cb(vault) {
			break
		}
	}
	return nil
}

// countPoolVaults counts the vault records stored under pool.
func (k Keeper) countPoolVaults(ctx context.Context, pool types.Pool) int {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.VaultKeyPrefixForPool(pool.Key()))
	defer iterator.Close()

	n := 0
	for ; iterator.Valid(); iterator.Next() {
		n++
	}
	return n
}

// credit moves amount of asset from sender into the pool's vault. The
// sender's own authorisation is established by the transaction signature.
func (k Keeper) credit(ctx context.Context, pool types.Pool, asset string, from sdk.AccAddress, amount math.Int) error {
	if amount.IsZero() {
		return nil
	}

	vault, err := k.GetVault(ctx, pool, asset)
	if err != nil {
		return err
	}
	balance, err := types.SafeAdd(vault.Balance, amount)
	if err != nil {
		return err
	}

	coins := sdk.NewCoins(sdk.NewCoin(asset, amount))
	if err := k.bankKeeper.SendCoins(ctx, from, vault.Address, coins); err != nil {
		return types.ErrInsufficientFunds.Wrapf("credit %s to %s vault of %s: %v", coins, asset, pool.Name(), err)
	}

	vault.Balance = balance
	return k.setVault(ctx, pool, vault)
}

// debit moves amount of asset out of the pool's vault to recipient. It
// requires the pool's own capability; a balance shortfall means an engine
// computed a wrong amount.
func (k Keeper) debit(ctx context.Context, auth vaultAuthority, pool types.Pool, asset string, to sdk.AccAddress, amount math.Int) error {
	if !auth.authorizes(pool) {
		return types.ErrUnauthorized.Wrapf("capability does not own the vaults of pool %s", pool.Name())
	}
	if amount.IsZero() {
		return nil
	}

	vault, err := k.GetVault(ctx, pool, asset)
	if err != nil {
		return err
	}
	if amount.GT(vault.Balance) {
		return types.ErrInsufficientVaultBalance.Wrapf(
			"debit %s%s from vault of %s holding %s", amount, asset, pool.Name(), vault.Balance,
		)
	}

	coins := sdk.NewCoins(sdk.NewCoin(asset, amount))
	if err := k.bankKeeper.SendCoins(ctx, vault.Address, to, coins); err != nil {
		return types.ErrInsufficientVaultBalance.Wrapf("debit %s from %s vault of %s: %v", coins, asset, pool.Name(), err)
	}

	vault.Balance = vault.Balance.Sub(amount)
	return k.setVault(ctx, pool, vault)
}
