package types

// Event types for the AMM module
const (
	EventTypePoolCreated     = "amm_pool_created"
	EventTypeAddLiquidity    = "amm_add_liquidity"
	EventTypeRemoveLiquidity = "amm_remove_liquidity"
	EventTypeSwap            = "amm_swap"
	EventTypeParamsUpdated   = "amm_params_updated"

	AttributeKeyPool        = "pool"
	AttributeKeyAssetA      = "asset_a"
	AttributeKeyAssetB      = "asset_b"
	AttributeKeyShareDenom  = "share_denom"
	AttributeKeyAuthority   = "authority"
	AttributeKeyCreator     = "creator"
	AttributeKeyProvider    = "provider"
	AttributeKeyTrader      = "trader"
	AttributeKeyAmountA     = "amount_a"
	AttributeKeyAmountB     = "amount_b"
	AttributeKeyShares      = "shares"
	AttributeKeyDirection   = "direction"
	AttributeKeyAssetIn     = "asset_in"
	AttributeKeyAssetOut    = "asset_out"
	AttributeKeyAmountIn    = "amount_in"
	AttributeKeyAmountOut   = "amount_out"
	AttributeKeyFee         = "fee"
	AttributeKeyReserveA    = "reserve_a"
	AttributeKeyReserveB    = "reserve_b"
	AttributeKeyTotalShares = "total_shares"
)
