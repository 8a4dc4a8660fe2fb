package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	// Identity errors: rejected before any state is read.
	ErrIdenticalAssets   = errors.Register(ModuleName, 2, "pool assets must differ")
	ErrUnorderedAssets   = errors.Register(ModuleName, 3, "pool assets are not in canonical order")
	ErrPoolAlreadyExists = errors.Register(ModuleName, 4, "pool already exists")
	ErrPoolNotFound      = errors.Register(ModuleName, 5, "pool not found")
	ErrInvalidAsset      = errors.Register(ModuleName, 6, "invalid asset denomination")
	ErrMaxPoolsReached   = errors.Register(ModuleName, 7, "maximum number of pools reached")

	// Economic errors: rejected after computing the result, before mutation.
	ErrZeroAmount            = errors.Register(ModuleName, 8, "amount must be positive")
	ErrZeroLiquidity         = errors.Register(ModuleName, 9, "liquidity amount rounds to zero")
	ErrRatioMismatch         = errors.Register(ModuleName, 10, "deposit does not match pool ratio")
	ErrInsufficientShares    = errors.Register(ModuleName, 11, "insufficient pool shares")
	ErrSlippageExceeded      = errors.Register(ModuleName, 12, "slippage exceeded")
	ErrInsufficientFunds     = errors.Register(ModuleName, 13, "insufficient funds")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 14, "insufficient liquidity in pool")
	ErrInvalidDirection      = errors.Register(ModuleName, 15, "invalid swap direction")

	// Numeric errors: fail closed.
	ErrArithmeticOverflow = errors.Register(ModuleName, 16, "arithmetic overflow")

	// Custody and consistency errors. Reaching any of these from a keeper
	// operation means an engine computed something wrong.
	ErrInsufficientVaultBalance = errors.Register(ModuleName, 17, "insufficient vault balance")
	ErrUnauthorized             = errors.Register(ModuleName, 18, "unauthorized vault access")
	ErrInvariantViolation       = errors.Register(ModuleName, 19, "pool invariant violated")

	// Configuration errors
	ErrInvalidParams  = errors.Register(ModuleName, 20, "invalid module parameters")
	ErrInvalidGenesis = errors.Register(ModuleName, 21, "invalid genesis state")
	ErrInvalidConfig  = errors.Register(ModuleName, 22, "invalid node configuration")
)
