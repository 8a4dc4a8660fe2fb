package types

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
)

func TestValidatePair(t *testing.T) {
	require.NoError(t, ValidatePair("uatom", "uosmo"))
	require.ErrorIs(t, ValidatePair("uatom", "uatom"), ErrIdenticalAssets)
	require.ErrorIs(t, ValidatePair("uosmo", "uatom"), ErrUnorderedAssets)
	require.ErrorIs(t, ValidatePair("1bad", "uatom"), ErrInvalidAsset)
	require.ErrorIs(t, ValidatePair("uatom", ""), ErrInvalidAsset)

	// identical wins over malformed
	require.ErrorIs(t, ValidatePair("", ""), ErrIdenticalAssets)
}

func TestSortAssets(t *testing.T) {
	a, b := SortAssets("uosmo", "uatom")
	require.Equal(t, "uatom", a)
	require.Equal(t, "uosmo", b)

	a, b = SortAssets("uatom", "uosmo")
	require.Equal(t, "uatom", a)
	require.Equal(t, "uosmo", b)
}

func TestNewPool(t *testing.T) {
	pool := NewPool("uatom", "uosmo")

	require.Equal(t, sdk.AccAddress(PoolAuthorityAddress("uatom", "uosmo")), pool.Authority)
	require.NoError(t, sdk.ValidateDenom(pool.ShareDenom))
	require.True(t, pool.IsEmpty())
	require.NoError(t, pool.Validate())
	require.Equal(t, "uatom/uosmo", pool.Name())

	other := NewPool("uatom", "uusdc")
	require.NotEqual(t, pool.Authority, other.Authority)
	require.NotEqual(t, pool.ShareDenom, other.ShareDenom)
}

func TestPoolValidate(t *testing.T) {
	require.NoError(t, fundedPool(100, 400, 200).Validate())

	orphanReserves := fundedPool(100, 400, 0)
	require.ErrorIs(t, orphanReserves.Validate(), ErrInvariantViolation)

	oneSided := fundedPool(100, 0, 10)
	require.ErrorIs(t, oneSided.Validate(), ErrInvariantViolation)

	negative := fundedPool(100, 400, 200)
	negative.ReserveA = math.NewInt(-1)
	require.ErrorIs(t, negative.Validate(), ErrInvariantViolation)

	forged := fundedPool(100, 400, 200)
	forged.Authority = NewPool("uatom", "uusdc").Authority
	require.ErrorIs(t, forged.Validate(), ErrInvariantViolation)

	wrongDenom := fundedPool(100, 400, 200)
	wrongDenom.ShareDenom = "amm/lp/other"
	require.ErrorIs(t, wrongDenom.Validate(), ErrInvariantViolation)

	nilAmount := NewPool("uatom", "uosmo")
	nilAmount.TotalShares = math.Int{}
	require.ErrorIs(t, nilAmount.Validate(), ErrInvariantViolation)
}

func TestPoolReserveAndLegs(t *testing.T) {
	pool := fundedPool(100, 400, 200)

	reserve, err := pool.Reserve("uosmo")
	require.NoError(t, err)
	requireInt(t, 400, reserve)

	_, err = pool.Reserve("uusdc")
	require.ErrorIs(t, err, ErrInvalidAsset)

	legs, err := pool.Legs(SwapBToA)
	require.NoError(t, err)
	require.Equal(t, "uosmo", legs.AssetIn)
	require.Equal(t, "uatom", legs.AssetOut)
	requireInt(t, 400, legs.ReserveIn)
	requireInt(t, 100, legs.ReserveOut)

	_, err = pool.Legs(SwapDirectionUnspecified)
	require.ErrorIs(t, err, ErrInvalidDirection)
}

func TestPlanDeposit_FirstDepositUsesGeometricMean(t *testing.T) {
	pool := NewPool("uatom", "uosmo")

	plan, err := pool.PlanDeposit(math.NewInt(100), math.NewInt(400), DefaultRatioToleranceBps)
	require.NoError(t, err)
	requireInt(t, 200, plan.Shares)
	requireInt(t, 100, plan.AmountA)
	requireInt(t, 400, plan.AmountB)
	requireInt(t, 100, plan.Next.ReserveA)
	requireInt(t, 400, plan.Next.ReserveB)
	requireInt(t, 200, plan.Next.TotalShares)
	require.NoError(t, plan.Next.Validate())

	// the receiver is untouched
	require.True(t, pool.IsEmpty())
}

func TestPlanDeposit_Proportional(t *testing.T) {
	pool := fundedPool(100, 400, 200)

	plan, err := pool.PlanDeposit(math.NewInt(50), math.NewInt(200), DefaultRatioToleranceBps)
	require.NoError(t, err)
	requireInt(t, 100, plan.Shares)
	requireInt(t, 50, plan.AmountA)
	requireInt(t, 200, plan.AmountB)
	requireInt(t, 150, plan.Next.ReserveA)
	requireInt(t, 600, plan.Next.ReserveB)
	requireInt(t, 300, plan.Next.TotalShares)
}

func TestPlanDeposit_ExcessWithinToleranceIsNotConsumed(t *testing.T) {
	pool := fundedPool(100, 400, 200)

	plan, err := pool.PlanDeposit(math.NewInt(100), math.NewInt(404), 100)
	require.NoError(t, err)
	requireInt(t, 200, plan.Shares)
	requireInt(t, 100, plan.AmountA)
	requireInt(t, 400, plan.AmountB)
}

func TestPlanDeposit_ConsumedRoundsUpWithinOffer(t *testing.T) {
	pool := fundedPool(3, 7, 5)

	plan, err := pool.PlanDeposit(math.NewInt(3), math.NewInt(7), 0)
	require.NoError(t, err)
	requireInt(t, 5, plan.Shares)
	require.True(t, plan.AmountA.LTE(math.NewInt(3)))
	require.True(t, plan.AmountB.LTE(math.NewInt(7)))

	plan, err = fundedPool(1000, 3000, 7).PlanDeposit(math.NewInt(500), math.NewInt(1500), 0)
	require.NoError(t, err)
	requireInt(t, 3, plan.Shares)
	// ceil(3*1000/7) = 429, ceil(3*3000/7) = 1286
	requireInt(t, 429, plan.AmountA)
	requireInt(t, 1286, plan.AmountB)
}

func TestPlanDeposit_Errors(t *testing.T) {
	pool := fundedPool(100, 400, 200)

	_, err := pool.PlanDeposit(math.NewInt(50), math.NewInt(100), DefaultRatioToleranceBps)
	require.ErrorIs(t, err, ErrRatioMismatch)

	_, err = pool.PlanDeposit(math.ZeroInt(), math.NewInt(100), DefaultRatioToleranceBps)
	require.ErrorIs(t, err, ErrZeroAmount)

	_, err = pool.PlanDeposit(math.NewInt(100), math.Int{}, DefaultRatioToleranceBps)
	require.ErrorIs(t, err, ErrZeroAmount)

	_, err = fundedPool(1000, 1000, 10).PlanDeposit(math.NewInt(1), math.NewInt(1), DefaultRatioToleranceBps)
	require.ErrorIs(t, err, ErrZeroLiquidity)

	_, err = NewPool("uatom", "uosmo").PlanDeposit(bigPow2(130), bigPow2(130), 0)
	require.ErrorIs(t, err, ErrArithmeticOverflow)
}

// TestPlanDeposit_LargeReserves tests that an exact-ratio deposit succeeds
// whenever the mint formula fits
func TestPlanDeposit_LargeReserves(t *testing.T) {
	pool := NewPool("uatom", "uosmo")
	pool.ReserveA, pool.ReserveB, pool.TotalShares = bigPow2(125), bigPow2(125), bigPow2(125)

	plan, err := pool.PlanDeposit(bigPow2(125), bigPow2(125), DefaultRatioToleranceBps)
	require.NoError(t, err)
	require.True(t, plan.Shares.Equal(bigPow2(125)))
	require.True(t, plan.Next.ReserveA.Equal(bigPow2(126)))
	require.True(t, plan.Next.TotalShares.Equal(bigPow2(126)))
}

func TestPlanWithdrawal(t *testing.T) {
	pool := fundedPool(100, 400, 200)

	plan, err := pool.PlanWithdrawal(math.NewInt(100))
	require.NoError(t, err)
	requireInt(t, 50, plan.AmountA)
	requireInt(t, 200, plan.AmountB)
	requireInt(t, 100, plan.Next.TotalShares)

	all, err := pool.PlanWithdrawal(math.NewInt(200))
	require.NoError(t, err)
	requireInt(t, 100, all.AmountA)
	requireInt(t, 400, all.AmountB)
	require.True(t, all.Next.IsEmpty())
	require.NoError(t, all.Next.Validate())

	_, err = pool.PlanWithdrawal(math.NewInt(201))
	require.ErrorIs(t, err, ErrInsufficientShares)

	_, err = pool.PlanWithdrawal(math.ZeroInt())
	require.ErrorIs(t, err, ErrZeroAmount)

	_, err = fundedPool(1000, 1000, 1_000_000).PlanWithdrawal(math.NewInt(1))
	require.ErrorIs(t, err, ErrZeroLiquidity)
}

func TestPlanSwap_NoFee(t *testing.T) {
	pool := fundedPool(100, 400, 200)

	plan, err := pool.PlanSwap(SwapAToB, math.NewInt(10), 0)
	require.NoError(t, err)
	requireInt(t, 36, plan.AmountOut)
	require.Equal(t, "uatom", plan.AssetIn)
	require.Equal(t, "uosmo", plan.AssetOut)
	require.True(t, plan.Fee.IsZero())
	requireInt(t, 110, plan.Next.ReserveA)
	requireInt(t, 364, plan.Next.ReserveB)
	requireInt(t, 200, plan.Next.TotalShares)

	reverse, err := pool.PlanSwap(SwapBToA, math.NewInt(40), 0)
	require.NoError(t, err)
	requireInt(t, 9, reverse.AmountOut)
	requireInt(t, 91, reverse.Next.ReserveA)
	requireInt(t, 440, reverse.Next.ReserveB)
}

func TestPlanSwap_ExactDivisionPreservesK(t *testing.T) {
	pool := fundedPool(100, 400, 200)

	plan, err := pool.PlanSwap(SwapAToB, math.NewInt(100), 0)
	require.NoError(t, err)
	requireInt(t, 200, plan.AmountOut)
	require.True(t, plan.Next.ReserveA.Mul(plan.Next.ReserveB).Equal(math.NewInt(40_000)))
}

func TestPlanSwap_FeeStaysInPool(t *testing.T) {
	pool := fundedPool(1_000_000, 1_000_000, 1_000_000)

	plan, err := pool.PlanSwap(SwapAToB, math.NewInt(1000), 30)
	require.NoError(t, err)
	requireInt(t, 997, plan.EffectiveIn)
	requireInt(t, 3, plan.Fee)
	requireInt(t, 996, plan.AmountOut)
	requireInt(t, 1_001_000, plan.Next.ReserveA)

	kBefore := pool.ReserveA.Mul(pool.ReserveB)
	kAfter := plan.Next.ReserveA.Mul(plan.Next.ReserveB)
	require.True(t, kAfter.GT(kBefore))
}

func TestPlanSwap_Errors(t *testing.T) {
	pool := fundedPool(1000, 10, 100)

	_, err := pool.PlanSwap(SwapAToB, math.NewInt(1), 0)
	require.ErrorIs(t, err, ErrZeroAmount)

	_, err = pool.PlanSwap(SwapAToB, math.ZeroInt(), 0)
	require.ErrorIs(t, err, ErrZeroAmount)

	_, err = pool.PlanSwap(SwapDirection(7), math.NewInt(10), 0)
	require.ErrorIs(t, err, ErrInvalidDirection)

	_, err = NewPool("uatom", "uosmo").PlanSwap(SwapAToB, math.NewInt(10), 0)
	require.ErrorIs(t, err, ErrInsufficientLiquidity)

	huge := fundedPool(1, 1, 1)
	huge.ReserveB = bigPow2(200)
	_, err = huge.PlanSwap(SwapAToB, bigPow2(100), 0)
	require.ErrorIs(t, err, ErrArithmeticOverflow)
}

func TestSpotPrice(t *testing.T) {
	pool := fundedPool(100, 400, 200)

	price, err := pool.SpotPrice(SwapAToB)
	require.NoError(t, err)
	require.Equal(t, math.LegacyNewDec(4).String(), price.String())

	price, err = pool.SpotPrice(SwapBToA)
	require.NoError(t, err)
	require.Equal(t, math.LegacyNewDecWithPrec(25, 2).String(), price.String())

	_, err = NewPool("uatom", "uosmo").SpotPrice(SwapAToB)
	require.ErrorIs(t, err, ErrInsufficientLiquidity)
}
