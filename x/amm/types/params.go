package types

import (
	"fmt"
)

const (
	// DefaultSwapFeeBps is the default protocol fee charged on swap input (0.3%).
	DefaultSwapFeeBps uint32 = 30
	// MaxSwapFeeBps caps the swap fee at 10%.
	MaxSwapFeeBps uint32 = 1_000

	// DefaultRatioToleranceBps lets a later deposit deviate 1% from the pool ratio.
	DefaultRatioToleranceBps uint32 = 100

	// DefaultMaxPools bounds the registry; 0 disables the limit.
	DefaultMaxPools uint64 = 10_000
)

// Params are the on-chain configuration points of the AMM.
type Params struct {
	// SwapFeeBps is deducted from every swap input before pricing and stays
	// in the pool.
	SwapFeeBps uint32 `json:"swap_fee_bps"`
	// RatioToleranceBps is how far a deposit into a funded pool may deviate
	// from the reserve ratio before it is rejected.
	RatioToleranceBps uint32 `json:"ratio_tolerance_bps"`
	// MaxPools is the registry capacity, 0 for unlimited.
	MaxPools uint64 `json:"max_pools"`
}

// NewParams creates a new Params instance
func NewParams(swapFeeBps, ratioToleranceBps uint32, maxPools uint64) Params {
	return Params{
		SwapFeeBps:        swapFeeBps,
		RatioToleranceBps: ratioToleranceBps,
		MaxPools:          maxPools,
	}
}

// DefaultParams returns a default set of parameters
func DefaultParams() Params {
	return NewParams(DefaultSwapFeeBps, DefaultRatioToleranceBps, DefaultMaxPools)
}

// Validate validates the set of params
func (p Params) Validate() error {
	if p.SwapFeeBps > MaxSwapFeeBps {
		return ErrInvalidParams.Wrapf("swap fee %d bps exceeds maximum %d", p.SwapFeeBps, MaxSwapFeeBps)
	}
	if p.RatioToleranceBps > BasisPoints {
		return ErrInvalidParams.Wrapf("ratio tolerance %d bps exceeds %d", p.RatioToleranceBps, BasisPoints)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("swap_fee_bps=%d ratio_tolerance_bps=%d max_pools=%d", p.SwapFeeBps, p.RatioToleranceBps, p.MaxPools)
}
