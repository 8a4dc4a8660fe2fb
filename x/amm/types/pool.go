package types

import (
	"bytes"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Pool is the reserve ledger entry of one trading pair. The identity fields
// (AssetA, AssetB, ShareDenom, Authority) are fixed at creation; only the
// liquidity and swap engines change the reserves and share supply.
type Pool struct {
	AssetA      string         `json:"asset_a"`
	AssetB      string         `json:"asset_b"`
	ShareDenom  string         `json:"share_denom"`
	Authority   sdk.AccAddress `json:"authority"`
	ReserveA    math.Int       `json:"reserve_a"`
	ReserveB    math.Int       `json:"reserve_b"`
	TotalShares math.Int       `json:"total_shares"`
}

// NewPool returns an empty pool bound to the canonical pair (assetA, assetB).
// The caller is expected to have run ValidatePair.
func NewPool(assetA, assetB string) Pool {
	authority := sdk.AccAddress(PoolAuthorityAddress(assetA, assetB))
	return Pool{
		AssetA:      assetA,
		AssetB:      assetB,
		ShareDenom:  ShareDenom(authority),
		Authority:   authority,
		ReserveA:    math.ZeroInt(),
		ReserveB:    math.ZeroInt(),
		TotalShares: math.ZeroInt(),
	}
}

// ValidatePair checks the identity of a pair in the order the registry
// reports failures: identical, malformed, then misordered.
func ValidatePair(assetA, assetB string) error {
	if assetA == assetB {
		return ErrIdenticalAssets.Wrapf("%s/%s", assetA, assetB)
	}
	if err := sdk.ValidateDenom(assetA); err != nil {
		return ErrInvalidAsset.Wrapf("asset a: %v", err)
	}
	if err := sdk.ValidateDenom(assetB); err != nil {
		return ErrInvalidAsset.Wrapf("asset b: %v", err)
	}
	if assetA > assetB {
		return ErrUnorderedAssets.Wrapf("%s must sort before %s", assetA, assetB)
	}
	return nil
}

// SortAssets returns x and y in canonical order.
func SortAssets(x, y string) (string, string) {
	if x > y {
		return y, x
	}
	return x, y
}

// Key returns the canonical pair key of the pool.
func (p Pool) Key() []byte {
	return PairKey(p.AssetA, p.AssetB)
}

// Name returns "assetA/assetB", used in events, logs and metric labels.
func (p Pool) Name() string {
	return p.AssetA + "/" + p.AssetB
}

// IsEmpty reports whether no shares have been minted yet.
func (p Pool) IsEmpty() bool {
	return p.TotalShares.IsZero()
}

// HasAsset reports whether asset is one side of the pool.
func (p Pool) HasAsset(asset string) bool {
	return asset == p.AssetA || asset == p.AssetB
}

// Reserve returns the reserve held for asset.
func (p Pool) Reserve(asset string) (math.Int, error) {
	switch asset {
	case p.AssetA:
		return p.ReserveA, nil
	case p.AssetB:
		return p.ReserveB, nil
	default:
		return math.Int{}, ErrInvalidAsset.Wrapf("%s is not part of pool %s", asset, p.Name())
	}
}

// SwapLegs describes which side of a pool plays input and output for one
// direction.
type SwapLegs struct {
	AssetIn    string
	AssetOut   string
	ReserveIn  math.Int
	ReserveOut math.Int
}

// Legs resolves a direction to its input and output sides.
func (p Pool) Legs(direction SwapDirection) (SwapLegs, error) {
	switch direction {
	case SwapAToB:
		return SwapLegs{AssetIn: p.AssetA, AssetOut: p.AssetB, ReserveIn: p.ReserveA, ReserveOut: p.ReserveB}, nil
	case SwapBToA:
		return SwapLegs{AssetIn: p.AssetB, AssetOut: p.AssetA, ReserveIn: p.ReserveB, ReserveOut: p.ReserveA}, nil
	default:
		return SwapLegs{}, direction.Validate()
	}
}

// Validate checks the identity fields against their derivation and the
// reserve/supply consistency of the ledger entry.
func (p Pool) Validate() error {
	if err := ValidatePair(p.AssetA, p.AssetB); err != nil {
		return err
	}

	authority := PoolAuthorityAddress(p.AssetA, p.AssetB)
	if !bytes.Equal(p.Authority, authority) {
		return ErrInvariantViolation.Wrapf("pool %s: authority does not match pair derivation", p.Name())
	}
	if p.ShareDenom != ShareDenom(authority) {
		return ErrInvariantViolation.Wrapf("pool %s: share denom %s does not match derivation", p.Name(), p.ShareDenom)
	}

	if p.ReserveA.IsNil() || p.ReserveB.IsNil() || p.TotalShares.IsNil() {
		return ErrInvariantViolation.Wrapf("pool %s: nil amount", p.Name())
	}
	if p.ReserveA.IsNegative() || p.ReserveB.IsNegative() || p.TotalShares.IsNegative() {
		return ErrInvariantViolation.Wrapf("pool %s: negative amount", p.Name())
	}

	if p.TotalShares.IsZero() {
		if !p.ReserveA.IsZero() || !p.ReserveB.IsZero() {
			return ErrInvariantViolation.Wrapf(
				"pool %s: reserves %s/%s with zero share supply",
				p.Name(), p.ReserveA, p.ReserveB,
			)
		}
		return nil
	}
	if p.ReserveA.IsZero() || p.ReserveB.IsZero() {
		return ErrInvariantViolation.Wrapf(
			"pool %s: share supply %s with reserves %s/%s",
			p.Name(), p.TotalShares, p.ReserveA, p.ReserveB,
		)
	}
	return nil
}

func (p Pool) String() string {
	return fmt.Sprintf("%s reserves=%s/%s shares=%s", p.Name(), p.ReserveA, p.ReserveB, p.TotalShares)
}

// DepositPlan is the fully validated outcome of a deposit, computed before
// any state is touched.
type DepositPlan struct {
	Shares  math.Int
	AmountA math.Int
	AmountB math.Int
	// Next is the pool as it will be stored once the deposit is applied.
	Next Pool
}

// PlanDeposit computes the shares minted for (amountA, amountB).
//
// An empty pool mints floor(sqrt(amountA*amountB)) and consumes both amounts.
// Otherwise the deposit must match the reserve ratio within toleranceBps; the
// smaller proportional side decides the shares and each consumed amount is
// ceil(shares*reserve/supply), which never exceeds what was offered.
func (p Pool) PlanDeposit(amountA, amountB math.Int, toleranceBps uint32) (DepositPlan, error) {
	if !isPositive(amountA) || !isPositive(amountB) {
		return DepositPlan{}, ErrZeroAmount.Wrapf("deposit %s/%s", amountA, amountB)
	}

	var (
		shares, usedA, usedB math.Int
		err                  error
	)
	if p.IsEmpty() {
		shares, err = GeometricMeanShares(amountA, amountB)
		if err != nil {
			return DepositPlan{}, err
		}
		usedA, usedB = amountA, amountB
	} else {
		if err := CheckRatio(amountA, amountB, p.ReserveA, p.ReserveB, toleranceBps); err != nil {
			return DepositPlan{}, err
		}
		sharesA, err := SafeMulDiv(amountA, p.TotalShares, p.ReserveA)
		if err != nil {
			return DepositPlan{}, err
		}
		sharesB, err := SafeMulDiv(amountB, p.TotalShares, p.ReserveB)
		if err != nil {
			return DepositPlan{}, err
		}
		shares = math.MinInt(sharesA, sharesB)
		if shares.IsZero() {
			return DepositPlan{}, ErrZeroLiquidity.Wrapf("deposit %s/%s into %s", amountA, amountB, p)
		}
		if usedA, err = SafeMulDivCeil(shares, p.ReserveA, p.TotalShares); err != nil {
			return DepositPlan{}, err
		}
		if usedB, err = SafeMulDivCeil(shares, p.ReserveB, p.TotalShares); err != nil {
			return DepositPlan{}, err
		}
	}
	if shares.IsZero() {
		return DepositPlan{}, ErrZeroLiquidity.Wrapf("deposit %s/%s mints no shares", amountA, amountB)
	}

	next := p
	if next.ReserveA, err = SafeAdd(p.ReserveA, usedA); err != nil {
		return DepositPlan{}, err
	}
	if next.ReserveB, err = SafeAdd(p.ReserveB, usedB); err != nil {
		return DepositPlan{}, err
	}
	if next.TotalShares, err = SafeAdd(p.TotalShares, shares); err != nil {
		return DepositPlan{}, err
	}

	return DepositPlan{Shares: shares, AmountA: usedA, AmountB: usedB, Next: next}, nil
}

// WithdrawalPlan is the fully validated outcome of burning shares.
type WithdrawalPlan struct {
	Shares  math.Int
	AmountA math.Int
	AmountB math.Int
	Next    Pool
}

// PlanWithdrawal computes the proportional claim of shares, rounded down.
func (p Pool) PlanWithdrawal(shares math.Int) (WithdrawalPlan, error) {
	if !isPositive(shares) {
		return WithdrawalPlan{}, ErrZeroAmount.Wrapf("shares %s", shares)
	}
	if shares.GT(p.TotalShares) {
		return WithdrawalPlan{}, ErrInsufficientShares.Wrapf("%s exceeds supply %s", shares, p.TotalShares)
	}

	amountA, err := SafeMulDiv(shares, p.ReserveA, p.TotalShares)
	if err != nil {
		return WithdrawalPlan{}, err
	}
	amountB, err := SafeMulDiv(shares, p.ReserveB, p.TotalShares)
	if err != nil {
		return WithdrawalPlan{}, err
	}
	if amountA.IsZero() && amountB.IsZero() {
		return WithdrawalPlan{}, ErrZeroLiquidity.Wrapf("%s shares of %s redeem nothing", shares, p)
	}

	next := p
	if next.ReserveA, err = SafeSub(p.ReserveA, amountA); err != nil {
		return WithdrawalPlan{}, err
	}
	if next.ReserveB, err = SafeSub(p.ReserveB, amountB); err != nil {
		return WithdrawalPlan{}, err
	}
	if next.TotalShares, err = SafeSub(p.TotalShares, shares); err != nil {
		return WithdrawalPlan{}, err
	}

	return WithdrawalPlan{Shares: shares, AmountA: amountA, AmountB: amountB, Next: next}, nil
}

// SwapPlan is the fully validated outcome of a swap.
type SwapPlan struct {
	Direction   SwapDirection
	AssetIn     string
	AssetOut    string
	AmountIn    math.Int
	EffectiveIn math.Int
	Fee         math.Int
	AmountOut   math.Int
	Next        Pool
}

// PlanSwap prices amountIn in the given direction after deducting feeBps and
// checks that the product of the reserves does not shrink (and grows whenever
// a fee is charged). Slippage bounds are left to the caller.
func (p Pool) PlanSwap(direction SwapDirection, amountIn math.Int, feeBps uint32) (SwapPlan, error) {
	legs, err := p.Legs(direction)
	if err != nil {
		return SwapPlan{}, err
	}
	if !isPositive(amountIn) {
		return SwapPlan{}, ErrZeroAmount.Wrapf("amount in %s", amountIn)
	}
	if !legs.ReserveIn.IsPositive() || !legs.ReserveOut.IsPositive() {
		return SwapPlan{}, ErrInsufficientLiquidity.Wrapf("pool %s has no liquidity", p.Name())
	}

	effectiveIn, err := ApplyFee(amountIn, feeBps)
	if err != nil {
		return SwapPlan{}, err
	}
	amountOut, err := ConstantProductOut(effectiveIn, legs.ReserveIn, legs.ReserveOut)
	if err != nil {
		return SwapPlan{}, err
	}
	if amountOut.IsZero() {
		return SwapPlan{}, ErrZeroAmount.Wrapf("%s %s buys no %s", amountIn, legs.AssetIn, legs.AssetOut)
	}
	if amountOut.GTE(legs.ReserveOut) {
		return SwapPlan{}, ErrInsufficientLiquidity.Wrapf("output %s drains reserve %s", amountOut, legs.ReserveOut)
	}

	newIn, err := SafeAdd(legs.ReserveIn, amountIn)
	if err != nil {
		return SwapPlan{}, err
	}
	newOut, err := SafeSub(legs.ReserveOut, amountOut)
	if err != nil {
		return SwapPlan{}, err
	}
	kBefore, err := SafeMul(legs.ReserveIn, legs.ReserveOut)
	if err != nil {
		return SwapPlan{}, err
	}
	kAfter, err := SafeMul(newIn, newOut)
	if err != nil {
		return SwapPlan{}, err
	}
	if kAfter.LT(kBefore) || (feeBps > 0 && kAfter.Equal(kBefore)) {
		return SwapPlan{}, ErrInvariantViolation.Wrapf("k %s -> %s with fee %d bps", kBefore, kAfter, feeBps)
	}

	next := p
	if direction == SwapAToB {
		next.ReserveA, next.ReserveB = newIn, newOut
	} else {
		next.ReserveB, next.ReserveA = newIn, newOut
	}

	return SwapPlan{
		Direction:   direction,
		AssetIn:     legs.AssetIn,
		AssetOut:    legs.AssetOut,
		AmountIn:    amountIn,
		EffectiveIn: effectiveIn,
		Fee:         amountIn.Sub(effectiveIn),
		AmountOut:   amountOut,
		Next:        next,
	}, nil
}

// SpotPrice returns reserveOut/reserveIn for the direction, the marginal
// price of one unit of input before fees.
func (p Pool) SpotPrice(direction SwapDirection) (math.LegacyDec, error) {
	legs, err := p.Legs(direction)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if !legs.ReserveIn.IsPositive() || !legs.ReserveOut.IsPositive() {
		return math.LegacyDec{}, ErrInsufficientLiquidity.Wrapf("pool %s has no liquidity", p.Name())
	}
	return math.LegacyNewDecFromInt(legs.ReserveOut).Quo(math.LegacyNewDecFromInt(legs.ReserveIn)), nil
}

func isPositive(amount math.Int) bool {
	return !amount.IsNil() && amount.IsPositive()
}
