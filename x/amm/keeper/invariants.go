package keeper

import (
	"context"
	"fmt"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// RegisterInvariants registers all AMM invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pool-state", PoolStateInvariant(k))
	ir.RegisterRoute(types.ModuleName, "vault-conservation", VaultConservationInvariant(k))
	ir.RegisterRoute(types.ModuleName, "share-supply", ShareSupplyInvariant(k))
}

// AllInvariants runs all invariants of the AMM module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := PoolStateInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = VaultConservationInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return ShareSupplyInvariant(k)(ctx)
	}
}

// PoolStateInvariant checks every pool's identity derivation and that its
// share supply is zero exactly when both reserves are, and that the registry
// counter matches the stored pools.
func PoolStateInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pool-state", err.Error()), true
		}

		var issues []string
		for _, pool := range pools {
			issues = append(issues, poolStateIssues(pool)...)
		}
		if stored := k.GetPoolCount(ctx); stored != uint64(len(pools)) {
			issues = append(issues, fmt.Sprintf("pool counter %d but %d pools stored", stored, len(pools)))
		}

		return sdk.FormatInvariant(
			types.ModuleName, "pool-state",
			fmt.Sprintf("found %d inconsistent pool records\n%s", len(issues), lines(issues)),
		), len(issues) != 0
	}
}

// VaultConservationInvariant checks that each vault's recorded balance is
// the matching pool reserve, that the coins are really held at the vault
// address, and that no vault exists without its pool.
func VaultConservationInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "vault-conservation", err.Error()), true
		}

		var issues []string
		for _, pool := range pools {
			issues = append(issues, k.vaultIssues(ctx, pool)...)
		}

		vaults := 0
		if err := k.iterateVaults(ctx, func(types.Vault) bool {
			vaults++
			return false
		}); err != nil {
			return sdk.FormatInvariant(types.ModuleName, "vault-conservation", err.Error()), true
		}
		if vaults != 2*len(pools) {
			issues = append(issues, fmt.Sprintf("%d vault records for %d pools", vaults, len(pools)))
		}

		return sdk.FormatInvariant(
			types.ModuleName, "vault-conservation",
			fmt.Sprintf("found %d vault discrepancies\n%s", len(issues), lines(issues)),
		), len(issues) != 0
	}
}

// ShareSupplyInvariant checks that every pool's share supply equals the bank
// supply of its share denom.
func ShareSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "share-supply", err.Error()), true
		}

		var issues []string
		for _, pool := range pools {
			issues = append(issues, k.shareSupplyIssues(ctx, pool)...)
		}

		return sdk.FormatInvariant(
			types.ModuleName, "share-supply",
			fmt.Sprintf("found %d pools with mismatched share supply\n%s", len(issues), lines(issues)),
		), len(issues) != 0
	}
}

// checkPool runs the invariants of one pool against ctx. It reads only that
// pool's records, vault addresses and share denom, so operations committing
// on other pools cannot affect the result.
func (k Keeper) checkPool(ctx context.Context, assetA, assetB string) error {
	pool, err := k.GetPool(ctx, assetA, assetB)
	if err != nil {
		return types.ErrInvariantViolation.Wrap(err.Error())
	}

	var issues []string
	issues = append(issues, poolStateIssues(*pool)...)
	issues = append(issues, k.vaultIssues(ctx, *pool)...)
	issues = append(issues, k.shareSupplyIssues(ctx, *pool)...)
	if len(issues) == 0 {
		return nil
	}
	return types.ErrInvariantViolation.Wrapf("pool %s: %s", pool.Name(), strings.Join(issues, "; "))
}

func poolStateIssues(pool types.Pool) []string {
	if err := pool.Validate(); err != nil {
		return []string{err.Error()}
	}
	return nil
}

func (k Keeper) vaultIssues(ctx context.Context, pool types.Pool) []string {
	vaultA, vaultB, err := k.GetVaults(ctx, pool)
	if err != nil {
		return []string{fmt.Sprintf("pool %s: %v", pool.Name(), err)}
	}

	var issues []string
	for _, check := range []struct {
		vault   types.Vault
		reserve math.Int
	}{
		{vaultA, pool.ReserveA},
		{vaultB, pool.ReserveB},
	} {
		if err := check.vault.Validate(pool); err != nil {
			issues = append(issues, err.Error())
			continue
		}
		if !check.vault.Balance.Equal(check.reserve) {
			issues = append(issues, fmt.Sprintf("pool %s: %s vault balance %s != reserve %s",
				pool.Name(), check.vault.Asset, check.vault.Balance, check.reserve))
		}
		held := k.bankKeeper.GetBalance(ctx, check.vault.Address, check.vault.Asset)
		if held.IsLT(check.vault.Coin()) {
			issues = append(issues, fmt.Sprintf("pool %s: vault holds %s, records %s",
				pool.Name(), held, check.vault.Coin()))
		}
	}
	if n := k.countPoolVaults(ctx, pool); n != 2 {
		issues = append(issues, fmt.Sprintf("pool %s: %d vault records", pool.Name(), n))
	}
	return issues
}

func (k Keeper) shareSupplyIssues(ctx context.Context, pool types.Pool) []string {
	supply := k.bankKeeper.GetSupply(ctx, pool.ShareDenom)
	if !supply.Amount.Equal(pool.TotalShares) {
		return []string{fmt.Sprintf("pool %s: share supply %s != bank supply %s",
			pool.Name(), pool.TotalShares, supply.Amount)}
	}
	return nil
}

func lines(issues []string) string {
	if len(issues) == 0 {
		return ""
	}
	return strings.Join(issues, "\n") + "\n"
}
