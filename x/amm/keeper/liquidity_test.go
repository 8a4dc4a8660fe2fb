package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/cpamm/testutil/keeper"
	"github.com/paw-chain/cpamm/x/amm/types"
)

func coins(amountA, amountB int64) sdk.Coins {
	return sdk.NewCoins(sdk.NewInt64Coin(assetA, amountA), sdk.NewInt64Coin(assetB, amountB))
}

// TestAddLiquidity_FirstDeposit tests that the first deposit mints the
// geometric mean and moves both amounts into the vaults
func TestAddLiquidity_FirstDeposit(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	provider := keepertest.TestAddr(1)
	pool, err := k.CreatePool(ctx, provider, assetA, assetB)
	require.NoError(t, err)
	keepertest.FundAccount(t, bank, ctx, provider, coins(100, 400))

	result, err := k.AddLiquidity(ctx, provider, assetA, assetB, math.NewInt(100), math.NewInt(400))
	require.NoError(t, err)
	requireInt(t, 200, result.Shares)
	requireInt(t, 100, result.AmountA)
	requireInt(t, 400, result.AmountB)

	stored, err := k.GetPool(ctx, assetA, assetB)
	require.NoError(t, err)
	requireInt(t, 100, stored.ReserveA)
	requireInt(t, 400, stored.ReserveB)
	requireInt(t, 200, stored.TotalShares)

	vaultA, vaultB, err := k.GetVaults(ctx, *stored)
	require.NoError(t, err)
	requireInt(t, 100, vaultA.Balance)
	requireInt(t, 400, vaultB.Balance)
	requireInt(t, 100, bank.GetBalance(ctx, vaultA.Address, assetA).Amount)
	requireInt(t, 400, bank.GetBalance(ctx, vaultB.Address, assetB).Amount)

	requireInt(t, 200, bank.GetBalance(ctx, provider, pool.ShareDenom).Amount)
	requireInt(t, 200, bank.GetSupply(ctx, pool.ShareDenom).Amount)
	requireInt(t, 0, bank.GetBalance(ctx, provider, assetA).Amount)
	requireInt(t, 0, bank.GetBalance(ctx, provider, assetB).Amount)
	requireInvariants(t, k, ctx)
}

// TestAddLiquidity_Proportional tests that a later deposit mints shares in
// proportion to the reserves
func TestAddLiquidity_Proportional(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	pool, _ := keepertest.CreateTestPool(t, k, ctx, bank, assetA, assetB, math.NewInt(100), math.NewInt(400))

	provider := keepertest.TestAddr(2)
	keepertest.FundAccount(t, bank, ctx, provider, coins(50, 200))

	result, err := k.AddLiquidity(ctx, provider, assetA, assetB, math.NewInt(50), math.NewInt(200))
	require.NoError(t, err)
	requireInt(t, 100, result.Shares)

	stored, err := k.GetPool(ctx, assetA, assetB)
	require.NoError(t, err)
	requireInt(t, 150, stored.ReserveA)
	requireInt(t, 600, stored.ReserveB)
	requireInt(t, 300, stored.TotalShares)
	requireInt(t, 100, bank.GetBalance(ctx, provider, pool.ShareDenom).Amount)
	requireInvariants(t, k, ctx)
}

// TestAddLiquidity_PullsOnlyBackedAmounts tests that an offer slightly off
// the pool ratio only pulls the amounts backing the minted shares
func TestAddLiquidity_PullsOnlyBackedAmounts(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	keepertest.CreateTestPool(t, k, ctx, bank, assetA, assetB, math.NewInt(100), math.NewInt(400))

	provider := keepertest.TestAddr(2)
	keepertest.FundAccount(t, bank, ctx, provider, coins(100, 404))

	result, err := k.AddLiquidity(ctx, provider, assetA, assetB, math.NewInt(100), math.NewInt(404))
	require.NoError(t, err)
	requireInt(t, 200, result.Shares)
	requireInt(t, 100, result.AmountA)
	requireInt(t, 400, result.AmountB)
	requireInt(t, 4, bank.GetBalance(ctx, provider, assetB).Amount)
	requireInvariants(t, k, ctx)
}

// TestAddLiquidity_RatioMismatch tests that an off-ratio deposit is
// rejected without touching any balance
func TestAddLiquidity_RatioMismatch(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	keepertest.CreateTestPool(t, k, ctx, bank, assetA, assetB, math.NewInt(100), math.NewInt(400))

	provider := keepertest.TestAddr(2)
	keepertest.FundAccount(t, bank, ctx, provider, coins(50, 100))
	before := poolState(k, ctx, bank, provider)

	_, err := k.AddLiquidity(ctx, provider, assetA, assetB, math.NewInt(50), math.NewInt(100))
	require.ErrorIs(t, err, types.ErrRatioMismatch)
	require.Equal(t, before, poolState(k, ctx, bank, provider))
}

// TestAddLiquidity_Errors tests rejected deposits leave state unchanged
func TestAddLiquidity_Errors(t *testing.T) {
	tests := []struct {
		name    string
		params  types.Params
		seedA   int64
		seedB   int64
		fund    sdk.Coins
		assetA  string
		assetB  string
		amountA math.Int
		amountB math.Int
		wantErr error
	}{
		{
			name:    "zero amount a",
			params:  types.DefaultParams(),
			seedA:   100,
			seedB:   400,
			fund:    coins(100, 400),
			assetA:  assetA,
			assetB:  assetB,
			amountA: math.ZeroInt(),
			amountB: math.NewInt(400),
			wantErr: types.ErrZeroAmount,
		},
		{
			name:    "nil amount b",
			params:  types.DefaultParams(),
			seedA:   100,
			seedB:   400,
			fund:    coins(100, 400),
			assetA:  assetA,
			assetB:  assetB,
			amountA: math.NewInt(100),
			amountB: math.Int{},
			wantErr: types.ErrZeroAmount,
		},
		{
			name:    "insufficient funds",
			params:  types.DefaultParams(),
			seedA:   100,
			seedB:   400,
			fund:    coins(10, 400),
			assetA:  assetA,
			assetB:  assetB,
			amountA: math.NewInt(100),
			amountB: math.NewInt(400),
			wantErr: types.ErrInsufficientFunds,
		},
		{
			name:    "unordered pair",
			params:  types.DefaultParams(),
			seedA:   100,
			seedB:   400,
			fund:    coins(100, 400),
			assetA:  assetB,
			assetB:  assetA,
			amountA: math.NewInt(100),
			amountB: math.NewInt(400),
			wantErr: types.ErrUnorderedAssets,
		},
		{
			name:    "unknown pool",
			params:  types.DefaultParams(),
			seedA:   100,
			seedB:   400,
			fund:    coins(100, 400),
			assetA:  assetA,
			assetB:  "uusdc",
			amountA: math.NewInt(100),
			amountB: math.NewInt(400),
			wantErr: types.ErrPoolNotFound,
		},
		{
			name:    "dust mints no shares",
			params:  types.NewParams(0, types.BasisPoints, 0),
			seedA:   10_000,
			seedB:   100,
			fund:    coins(9, 1),
			assetA:  assetA,
			assetB:  assetB,
			amountA: math.NewInt(9),
			amountB: math.NewInt(1),
			wantErr: types.ErrZeroLiquidity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k, ctx, bank := keepertest.AMMKeeper(t, keepertest.WithParams(tc.params))
			keepertest.CreateTestPool(t, k, ctx, bank, assetA, assetB, math.NewInt(tc.seedA), math.NewInt(tc.seedB))

			provider := keepertest.TestAddr(2)
			keepertest.FundAccount(t, bank, ctx, provider, tc.fund)
			before := poolState(k, ctx, bank, provider)

			_, err := k.AddLiquidity(ctx, provider, tc.assetA, tc.assetB, tc.amountA, tc.amountB)
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, before, poolState(k, ctx, bank, provider))
		})
	}
}

// TestRemoveLiquidity_Partial tests a proportional payout for part of the
// supply
func TestRemoveLiquidity_Partial(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	pool, provider := keepertest.CreateTestPool(t, k, ctx, bank, assetA, assetB, math.NewInt(100), math.NewInt(400))

	result, err := k.RemoveLiquidity(ctx, provider, assetA, assetB, math.NewInt(100))
	require.NoError(t, err)
	requireInt(t, 50, result.AmountA)
	requireInt(t, 200, result.AmountB)

	stored, err := k.GetPool(ctx, assetA, assetB)
	require.NoError(t, err)
	requireInt(t, 50, stored.ReserveA)
	requireInt(t, 200, stored.ReserveB)
	requireInt(t, 100, stored.TotalShares)

	requireInt(t, 50, bank.GetBalance(ctx, provider, assetA).Amount)
	requireInt(t, 200, bank.GetBalance(ctx, provider, assetB).Amount)
	requireInt(t, 100, bank.GetBalance(ctx, provider, pool.ShareDenom).Amount)
	requireInt(t, 100, bank.GetSupply(ctx, pool.ShareDenom).Amount)
	requireInvariants(t, k, ctx)
}

// TestRemoveLiquidity_Full tests that burning the whole supply empties the
// pool, after which the next deposit is priced as a first deposit again
func TestRemoveLiquidity_Full(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	pool, provider := keepertest.CreateTestPool(t, k, ctx, bank, assetA, assetB, math.NewInt(100), math.NewInt(400))

	result, err := k.RemoveLiquidity(ctx, provider, assetA, assetB, math.NewInt(200))
	require.NoError(t, err)
	requireInt(t, 100, result.AmountA)
	requireInt(t, 400, result.AmountB)

	stored, err := k.GetPool(ctx, assetA, assetB)
	require.NoError(t, err)
	require.True(t, stored.IsEmpty())
	require.True(t, stored.ReserveA.IsZero())
	require.True(t, stored.ReserveB.IsZero())
	require.True(t, bank.GetSupply(ctx, pool.ShareDenom).IsZero())
	requireInvariants(t, k, ctx)

	added, err := k.AddLiquidity(ctx, provider, assetA, assetB, math.NewInt(9), math.NewInt(16))
	require.NoError(t, err)
	requireInt(t, 12, added.Shares)
	requireInvariants(t, k, ctx)
}

// TestRemoveLiquidity_Errors tests rejected withdrawals leave state
// unchanged
func TestRemoveLiquidity_Errors(t *testing.T) {
	tests := []struct {
		name     string
		provider sdk.AccAddress
		shares   math.Int
		wantErr  error
	}{
		{"zero shares", keepertest.TestAddr(200), math.ZeroInt(), types.ErrZeroAmount},
		{"more than supply", keepertest.TestAddr(200), math.NewInt(201), types.ErrInsufficientShares},
		{"holds no shares", keepertest.TestAddr(2), math.NewInt(10), types.ErrInsufficientShares},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k, ctx, bank := keepertest.AMMKeeper(t)
			keepertest.CreateTestPool(t, k, ctx, bank, assetA, assetB, math.NewInt(100), math.NewInt(400))
			before := poolState(k, ctx, bank, tc.provider)

			_, err := k.RemoveLiquidity(ctx, tc.provider, assetA, assetB, tc.shares)
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, before, poolState(k, ctx, bank, tc.provider))
		})
	}
}

// TestLiquidity_RoundTrip tests that withdrawing and redepositing the payout
// restores the pool exactly
func TestLiquidity_RoundTrip(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	_, provider := keepertest.CreateTestPool(t, k, ctx, bank, assetA, assetB, math.NewInt(100), math.NewInt(400))
	before := poolState(k, ctx, bank, provider)

	removed, err := k.RemoveLiquidity(ctx, provider, assetA, assetB, math.NewInt(50))
	require.NoError(t, err)
	requireInt(t, 25, removed.AmountA)
	requireInt(t, 100, removed.AmountB)

	added, err := k.AddLiquidity(ctx, provider, assetA, assetB, removed.AmountA, removed.AmountB)
	require.NoError(t, err)
	requireInt(t, 50, added.Shares)
	require.Equal(t, before, poolState(k, ctx, bank, provider))
}
