package types

import (
	"cosmossdk.io/math"
)

// AddLiquidityResult reports a committed deposit: the shares minted and the
// amounts actually pulled from the provider.
type AddLiquidityResult struct {
	Shares  math.Int `json:"shares"`
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// RemoveLiquidityResult reports the amounts paid out for burned shares.
type RemoveLiquidityResult struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}
