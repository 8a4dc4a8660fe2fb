package types

import (
	"math/big"

	"cosmossdk.io/math"
)

// BasisPoints is the denominator of every fee and tolerance expressed in bps.
const BasisPoints = 10_000

var basisPoints = math.NewInt(BasisPoints)

// ApplyFee returns amountIn net of a feeBps basis-point fee, rounded down so
// the remainder always stays with the pool.
func ApplyFee(amountIn math.Int, feeBps uint32) (math.Int, error) {
	if feeBps > BasisPoints {
		return math.Int{}, ErrInvalidParams.Wrapf("fee %d bps exceeds %d", feeBps, BasisPoints)
	}
	if feeBps == 0 {
		return amountIn, nil
	}
	return SafeMulDiv(amountIn, math.NewInt(int64(BasisPoints-feeBps)), basisPoints)
}

// ConstantProductOut prices amountIn against (reserveIn, reserveOut) on the
// x*y=k curve:
//
//	amountOut = floor(amountIn * reserveOut / (reserveIn + amountIn))
//
// Flooring keeps the product of the resulting reserves at or above k.
func ConstantProductOut(amountIn, reserveIn, reserveOut math.Int) (math.Int, error) {
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, ErrInsufficientLiquidity.Wrapf("reserves %s/%s", reserveIn, reserveOut)
	}
	numerator, err := SafeMul(amountIn, reserveOut)
	if err != nil {
		return math.Int{}, err
	}
	denominator, err := SafeAdd(reserveIn, amountIn)
	if err != nil {
		return math.Int{}, err
	}
	return SafeQuo(numerator, denominator)
}

// GeometricMeanShares returns floor(sqrt(amountA * amountB)), the share count
// minted by the first deposit into an empty pool.
func GeometricMeanShares(amountA, amountB math.Int) (math.Int, error) {
	product, err := SafeMul(amountA, amountB)
	if err != nil {
		return math.Int{}, err
	}
	return SqrtFloor(product)
}

// CheckRatio accepts a deposit (amountA, amountB) only when it matches the
// reserve ratio within toleranceBps, measured on the cross products
// amountA*reserveB and amountB*reserveA. The cross products share the bound
// of the mint formula; the tolerance comparison itself is unbounded.
func CheckRatio(amountA, amountB, reserveA, reserveB math.Int, toleranceBps uint32) error {
	crossA, err := SafeMul(amountA, reserveB)
	if err != nil {
		return err
	}
	crossB, err := SafeMul(amountB, reserveA)
	if err != nil {
		return err
	}

	deviation := new(big.Int).Mul(crossA.Sub(crossB).Abs().BigInt(), big.NewInt(BasisPoints))
	allowed := new(big.Int).Mul(math.MaxInt(crossA, crossB).BigInt(), big.NewInt(int64(toleranceBps)))

	if deviation.Cmp(allowed) > 0 {
		return ErrRatioMismatch.Wrapf(
			"deposit %s:%s against reserves %s:%s exceeds tolerance of %d bps",
			amountA, amountB, reserveA, reserveB, toleranceBps,
		)
	}
	return nil
}
