package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel/attribute"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// Swap sells amountIn of the direction's input asset into the pool of the
// canonical pair and pays out the constant-product output:
//
//	effectiveIn = amountIn * (10000 - SwapFeeBps) / 10000
//	amountOut   = effectiveIn * reserveOut / (reserveIn + effectiveIn)
//
// The full amountIn, fee included, stays in the input vault. The output is
// checked against minAmountOut using reserves read under the pool lock, so
// no other operation can move them between quote and check.
func (k Keeper) Swap(
	goCtx context.Context,
	trader sdk.AccAddress,
	assetA, assetB string,
	amountIn, minAmountOut math.Int,
	direction types.SwapDirection,
) (amountOut math.Int, err error) {
	start := time.Now()
	goCtx, span := k.startSpan(goCtx, "Swap",
		attribute.String("asset_a", assetA),
		attribute.String("asset_b", assetB),
		attribute.String("direction", direction.String()),
		attribute.String("amount_in", amountIn.String()),
		attribute.String("min_amount_out", minAmountOut.String()),
	)
	defer func() {
		k.metrics.observe(opSwap, start, err)
		endSpan(span, err)
	}()

	if err := types.ValidatePair(assetA, assetB); err != nil {
		return math.ZeroInt(), err
	}
	if err := direction.Validate(); err != nil {
		return math.ZeroInt(), err
	}

	var plan types.SwapPlan
	err = k.atomically(goCtx, assetA, assetB, func(ctx sdk.Context) error {
		pool, err := k.loadPool(ctx, assetA, assetB)
		if err != nil {
			return err
		}
		params, err := k.GetParams(ctx)
		if err != nil {
			return err
		}

		// 1. Price against current reserves and validate
		plan, err = pool.PlanSwap(direction, amountIn, params.SwapFeeBps)
		if err != nil {
			return err
		}
		if !minAmountOut.IsNil() && plan.AmountOut.LT(minAmountOut) {
			return types.ErrSlippageExceeded.Wrapf(
				"output %s%s below minimum %s", plan.AmountOut, plan.AssetOut, minAmountOut,
			)
		}
		if err := k.requireBalance(ctx, trader, plan.AssetIn, plan.AmountIn); err != nil {
			return err
		}

		// 2. Both legs: input credited, output debited under the pool authority
		if err := k.credit(ctx, pool, plan.AssetIn, trader, plan.AmountIn); err != nil {
			return err
		}
		if err := k.debit(ctx, k.poolAuthority(pool), pool, plan.AssetOut, trader, plan.AmountOut); err != nil {
			return err
		}

		// 3. Reserve ledger
		if err := k.setPool(ctx, plan.Next); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSwap,
				sdk.NewAttribute(types.AttributeKeyPool, pool.Name()),
				sdk.NewAttribute(types.AttributeKeyTrader, trader.String()),
				sdk.NewAttribute(types.AttributeKeyDirection, direction.String()),
				sdk.NewAttribute(types.AttributeKeyAssetIn, plan.AssetIn),
				sdk.NewAttribute(types.AttributeKeyAssetOut, plan.AssetOut),
				sdk.NewAttribute(types.AttributeKeyAmountIn, plan.AmountIn.String()),
				sdk.NewAttribute(types.AttributeKeyAmountOut, plan.AmountOut.String()),
				sdk.NewAttribute(types.AttributeKeyFee, plan.Fee.String()),
				sdk.NewAttribute(types.AttributeKeyReserveA, plan.Next.ReserveA.String()),
				sdk.NewAttribute(types.AttributeKeyReserveB, plan.Next.ReserveB.String()),
			),
		)
		return nil
	})
	if err != nil {
		return math.ZeroInt(), err
	}

	k.Logger(goCtx).Debug("swap executed",
		"pool", plan.Next.Name(),
		"trader", trader.String(),
		"direction", direction.String(),
		"amount_in", plan.AmountIn.String(),
		"amount_out", plan.AmountOut.String(),
		"fee", plan.Fee.String(),
	)
	k.metrics.swapExecuted(plan)
	return plan.AmountOut, nil
}

// SimulateSwap quotes a swap against the stored reserves without writing
// anything. The quote is only binding if nothing else touches the pool
// before the swap executes; Swap re-prices under the pool lock.
func (k Keeper) SimulateSwap(
	ctx context.Context,
	assetA, assetB string,
	amountIn math.Int,
	direction types.SwapDirection,
) (types.SwapPlan, error) {
	pool, err := k.loadPool(ctx, assetA, assetB)
	if err != nil {
		return types.SwapPlan{}, err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.SwapPlan{}, err
	}
	return pool.PlanSwap(direction, amountIn, params.SwapFeeBps)
}

// GetSpotPrice returns units of output asset per unit of input asset at the
// current reserves, before fees.
func (k Keeper) GetSpotPrice(ctx context.Context, assetA, assetB string, direction types.SwapDirection) (math.LegacyDec, error) {
	pool, err := k.loadPool(ctx, assetA, assetB)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return pool.SpotPrice(direction)
}
