package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel/attribute"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// AddLiquidity deposits up to (amountA, amountB) into the pool of the
// canonical pair and mints pool shares to provider.
//
// The first deposit mints floor(sqrt(amountA*amountB)) shares. Later
// deposits must match the reserve ratio within the RatioToleranceBps param
// (ErrRatioMismatch otherwise) and mint the smaller of the two proportional
// share counts; only the amounts backing those shares are pulled from the
// provider. A deposit too small to mint a share fails with ErrZeroLiquidity.
func (k Keeper) AddLiquidity(
	goCtx context.Context,
	provider sdk.AccAddress,
	assetA, assetB string,
	amountA, amountB math.Int,
) (result types.AddLiquidityResult, err error) {
	start := time.Now()
	goCtx, span := k.startSpan(goCtx, "AddLiquidity",
		attribute.String("asset_a", assetA),
		attribute.String("asset_b", assetB),
		attribute.String("amount_a", amountA.String()),
		attribute.String("amount_b", amountB.String()),
	)
	defer func() {
		k.metrics.observe(opAddLiquidity, start, err)
		endSpan(span, err)
	}()

	if err := types.ValidatePair(assetA, assetB); err != nil {
		return types.AddLiquidityResult{}, err
	}

	var next types.Pool
	err = k.atomically(goCtx, assetA, assetB, func(ctx sdk.Context) error {
		pool, err := k.loadPool(ctx, assetA, assetB)
		if err != nil {
			return err
		}
		params, err := k.GetParams(ctx)
		if err != nil {
			return err
		}

		// 1. Compute and validate everything before the first transfer
		plan, err := pool.PlanDeposit(amountA, amountB, params.RatioToleranceBps)
		if err != nil {
			return err
		}
		if err := k.requireBalance(ctx, provider, pool.AssetA, plan.AmountA); err != nil {
			return err
		}
		if err := k.requireBalance(ctx, provider, pool.AssetB, plan.AmountB); err != nil {
			return err
		}

		// 2. Custody: both legs into the vaults
		if err := k.credit(ctx, pool, pool.AssetA, provider, plan.AmountA); err != nil {
			return err
		}
		if err := k.credit(ctx, pool, pool.AssetB, provider, plan.AmountB); err != nil {
			return err
		}

		// 3. Shares
		shares := sdk.NewCoins(sdk.NewCoin(pool.ShareDenom, plan.Shares))
		if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, shares); err != nil {
			return err
		}
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, provider, shares); err != nil {
			return err
		}

		// 4. Reserve ledger
		if err := k.setPool(ctx, plan.Next); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeAddLiquidity,
				sdk.NewAttribute(types.AttributeKeyPool, pool.Name()),
				sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
				sdk.NewAttribute(types.AttributeKeyAmountA, plan.AmountA.String()),
				sdk.NewAttribute(types.AttributeKeyAmountB, plan.AmountB.String()),
				sdk.NewAttribute(types.AttributeKeyShares, plan.Shares.String()),
				sdk.NewAttribute(types.AttributeKeyReserveA, plan.Next.ReserveA.String()),
				sdk.NewAttribute(types.AttributeKeyReserveB, plan.Next.ReserveB.String()),
				sdk.NewAttribute(types.AttributeKeyTotalShares, plan.Next.TotalShares.String()),
			),
		)

		result = types.AddLiquidityResult{Shares: plan.Shares, AmountA: plan.AmountA, AmountB: plan.AmountB}
		next = plan.Next
		return nil
	})
	if err != nil {
		return types.AddLiquidityResult{}, err
	}

	k.Logger(goCtx).Debug("liquidity added",
		"pool", next.Name(),
		"provider", provider.String(),
		"shares", result.Shares.String(),
		"amount_a", result.AmountA.String(),
		"amount_b", result.AmountB.String(),
	)
	k.metrics.liquidityAdded(next, result.AmountA, result.AmountB)
	return result, nil
}

// RemoveLiquidity burns shares held by provider and pays out the
// proportional claim floor(shares*reserve/supply) on each side from the
// pool's vaults. Returns ErrInsufficientShares if provider holds fewer than
// shares.
func (k Keeper) RemoveLiquidity(
	goCtx context.Context,
	provider sdk.AccAddress,
	assetA, assetB string,
	shares math.Int,
) (result types.RemoveLiquidityResult, err error) {
	start := time.Now()
	goCtx, span := k.startSpan(goCtx, "RemoveLiquidity",
		attribute.String("asset_a", assetA),
		attribute.String("asset_b", assetB),
		attribute.String("shares", shares.String()),
	)
	defer func() {
		k.metrics.observe(opRemoveLiquidity, start, err)
		endSpan(span, err)
	}()

	if err := types.ValidatePair(assetA, assetB); err != nil {
		return types.RemoveLiquidityResult{}, err
	}

	var next types.Pool
	err = k.atomically(goCtx, assetA, assetB, func(ctx sdk.Context) error {
		pool, err := k.loadPool(ctx, assetA, assetB)
		if err != nil {
			return err
		}

		// 1. Compute and validate
		plan, err := pool.PlanWithdrawal(shares)
		if err != nil {
			return err
		}
		held := k.bankKeeper.GetBalance(ctx, provider, pool.ShareDenom)
		if held.Amount.LT(shares) {
			return types.ErrInsufficientShares.Wrapf("%s holds %s, wants to burn %s", provider, held, shares)
		}

		// 2. Burn the shares
		burn := sdk.NewCoins(sdk.NewCoin(pool.ShareDenom, shares))
		if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, provider, types.ModuleName, burn); err != nil {
			return types.ErrInsufficientShares.Wrapf("collect %s: %v", burn, err)
		}
		if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, burn); err != nil {
			return err
		}

		// 3. Custody: both legs out of the vaults under the pool authority
		auth := k.poolAuthority(pool)
		if err := k.debit(ctx, auth, pool, pool.AssetA, provider, plan.AmountA); err != nil {
			return err
		}
		if err := k.debit(ctx, auth, pool, pool.AssetB, provider, plan.AmountB); err != nil {
			return err
		}

		// 4. Reserve ledger
		if err := k.setPool(ctx, plan.Next); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeRemoveLiquidity,
				sdk.NewAttribute(types.AttributeKeyPool, pool.Name()),
				sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
				sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
				sdk.NewAttribute(types.AttributeKeyAmountA, plan.AmountA.String()),
				sdk.NewAttribute(types.AttributeKeyAmountB, plan.AmountB.String()),
				sdk.NewAttribute(types.AttributeKeyReserveA, plan.Next.ReserveA.String()),
				sdk.NewAttribute(types.AttributeKeyReserveB, plan.Next.ReserveB.String()),
				sdk.NewAttribute(types.AttributeKeyTotalShares, plan.Next.TotalShares.String()),
			),
		)

		result = types.RemoveLiquidityResult{AmountA: plan.AmountA, AmountB: plan.AmountB}
		next = plan.Next
		return nil
	})
	if err != nil {
		return types.RemoveLiquidityResult{}, err
	}

	k.Logger(goCtx).Debug("liquidity removed",
		"pool", next.Name(),
		"provider", provider.String(),
		"shares", shares.String(),
		"amount_a", result.AmountA.String(),
		"amount_b", result.AmountB.String(),
	)
	k.metrics.liquidityRemoved(next, result.AmountA, result.AmountB)
	return result, nil
}

// requireBalance fails with ErrInsufficientFunds unless addr holds amount of
// denom.
func (k Keeper) requireBalance(ctx context.Context, addr sdk.AccAddress, denom string, amount math.Int) error {
	balance := k.bankKeeper.GetBalance(ctx, addr, denom)
	if balance.Amount.LT(amount) {
		return types.ErrInsufficientFunds.Wrapf("%s has %s, needs %s%s", addr, balance, amount, denom)
	}
	return nil
}
