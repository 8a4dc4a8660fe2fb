package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// VaultAuthorityForTest exposes the vault capability type to keeper_test.
type VaultAuthorityForTest = vaultAuthority

// PoolAuthorityForTest mints the vault capability of pool.
func PoolAuthorityForTest(k Keeper, pool types.Pool) VaultAuthorityForTest {
	return k.poolAuthority(pool)
}

// CreditForTest exposes vault credits for white-box tests.
func CreditForTest(k Keeper, ctx sdk.Context, pool types.Pool, asset string, from sdk.AccAddress, amount math.Int) error {
	return k.credit(ctx, pool, asset, from, amount)
}

// DebitForTest exposes vault debits for white-box tests.
func DebitForTest(k Keeper, ctx sdk.Context, auth VaultAuthorityForTest, pool types.Pool, asset string, to sdk.AccAddress, amount math.Int) error {
	return k.debit(ctx, auth, pool, asset, to, amount)
}

// SetPoolForTest overwrites a pool record, bypassing the engines.
func SetPoolForTest(k Keeper, ctx sdk.Context, pool types.Pool) error {
	return k.setPool(ctx, pool)
}

// SetVaultForTest overwrites a vault record, bypassing the engines.
func SetVaultForTest(k Keeper, ctx sdk.Context, pool types.Pool, vault types.Vault) error {
	return k.setVault(ctx, pool, vault)
}

// SetPoolCountForTest overwrites the registry counter.
func SetPoolCountForTest(k Keeper, ctx sdk.Context, count uint64) {
	k.setPoolCount(ctx, count)
}

// PoolLockCountForTest returns how many pool mutexes the keeper holds.
func PoolLockCountForTest(k Keeper) int {
	return k.locks.len()
}
