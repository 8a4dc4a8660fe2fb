package types

import (
	"math/big"

	"cosmossdk.io/math"
)

// Checked integer arithmetic for reserve and share accounting. Every helper
// fails with ErrArithmeticOverflow instead of panicking or wrapping, and
// treats the values as unsigned quantities.

// SafeAdd adds two amounts with overflow checking
func SafeAdd(a, b math.Int) (math.Int, error) {
	res, err := a.SafeAdd(b)
	if err != nil {
		return math.Int{}, ErrArithmeticOverflow.Wrapf("%s + %s: %v", a, b, err)
	}
	return res, nil
}

// SafeSub subtracts b from a, failing when the result would be negative
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, ErrArithmeticOverflow.Wrapf("underflow: %s - %s", a, b)
	}
	return a.Sub(b), nil
}

// SafeMul multiplies two amounts with overflow checking
func SafeMul(a, b math.Int) (math.Int, error) {
	if a.IsZero() || b.IsZero() {
		return math.ZeroInt(), nil
	}
	res, err := a.SafeMul(b)
	if err != nil {
		return math.Int{}, ErrArithmeticOverflow.Wrapf("%s * %s: %v", a, b, err)
	}
	return res, nil
}

// SafeQuo divides a by b, rounding toward zero
func SafeQuo(a, b math.Int) (math.Int, error) {
	if b.IsZero() {
		return math.Int{}, ErrArithmeticOverflow.Wrapf("division of %s by zero", a)
	}
	return a.Quo(b), nil
}

// SafeMulDiv performs floor((a * b) / c) with overflow protection on the
// intermediate product.
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	product, err := SafeMul(a, b)
	if err != nil {
		return math.Int{}, err
	}
	return SafeQuo(product, c)
}

// SafeMulDivCeil performs ceil((a * b) / c) with overflow protection.
func SafeMulDivCeil(a, b, c math.Int) (math.Int, error) {
	product, err := SafeMul(a, b)
	if err != nil {
		return math.Int{}, err
	}
	quo, err := SafeQuo(product, c)
	if err != nil {
		return math.Int{}, err
	}
	if product.Mod(c).IsZero() {
		return quo, nil
	}
	return SafeAdd(quo, math.OneInt())
}

// SqrtFloor returns floor(sqrt(a)) computed exactly on the integer.
func SqrtFloor(a math.Int) (math.Int, error) {
	if a.IsNegative() {
		return math.Int{}, ErrArithmeticOverflow.Wrapf("square root of negative %s", a)
	}
	return math.NewIntFromBigInt(new(big.Int).Sqrt(a.BigInt())), nil
}
