package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Launch defaults for a bonding-curve token: one billion whole tokens at six
// decimals, priced against a virtual quote reserve of 30 whole units at nine
// decimals.
var (
	DefaultBondingCurveSupply         = math.NewInt(1_000_000_000_000_000)
	DefaultBondingCurveVirtualReserve = math.NewInt(30_000_000_000)
)

// BondingCurve prices a launch token against a quote asset with the same
// constant-product function as pools, over real reserves shifted by virtual
// offsets so that the price is defined before any real liquidity exists.
// Side A is the quote asset, side B the launched token.
type BondingCurve struct {
	Creator         sdk.AccAddress `json:"creator"`
	Mint            string         `json:"mint"`
	VirtualReserveA math.Int       `json:"virtual_reserve_a"`
	VirtualReserveB math.Int       `json:"virtual_reserve_b"`
	RealReserveA    math.Int       `json:"real_reserve_a"`
	RealReserveB    math.Int       `json:"real_reserve_b"`
	TotalSupply     math.Int       `json:"total_supply"`
}

// NewBondingCurve returns a curve with the launch defaults: the whole supply
// sits in the real token reserve and mirrors into the virtual one.
func NewBondingCurve(creator sdk.AccAddress, mint string) BondingCurve {
	return BondingCurve{
		Creator:         creator,
		Mint:            mint,
		VirtualReserveA: DefaultBondingCurveVirtualReserve,
		VirtualReserveB: DefaultBondingCurveSupply,
		RealReserveA:    math.ZeroInt(),
		RealReserveB:    DefaultBondingCurveSupply,
		TotalSupply:     DefaultBondingCurveSupply,
	}
}

// Validate checks the record for negative or inconsistent amounts.
func (c BondingCurve) Validate() error {
	if err := sdk.ValidateDenom(c.Mint); err != nil {
		return ErrInvalidAsset.Wrapf("mint: %v", err)
	}
	for _, amt := range []math.Int{c.VirtualReserveA, c.VirtualReserveB, c.RealReserveA, c.RealReserveB, c.TotalSupply} {
		if amt.IsNil() || amt.IsNegative() {
			return ErrInvariantViolation.Wrapf("bonding curve %s: invalid amount %v", c.Mint, amt)
		}
	}
	if c.RealReserveB.GT(c.TotalSupply) {
		return ErrInvariantViolation.Wrapf("bonding curve %s: token reserve %s exceeds supply %s", c.Mint, c.RealReserveB, c.TotalSupply)
	}
	return nil
}

// QuoteBuy returns the tokens bought with quoteIn.
func (c BondingCurve) QuoteBuy(quoteIn math.Int) (math.Int, error) {
	return c.quote(quoteIn, c.VirtualReserveA, c.RealReserveA, c.VirtualReserveB, c.RealReserveB)
}

// QuoteSell returns the quote asset received for tokensIn.
func (c BondingCurve) QuoteSell(tokensIn math.Int) (math.Int, error) {
	return c.quote(tokensIn, c.VirtualReserveB, c.RealReserveB, c.VirtualReserveA, c.RealReserveA)
}

// SpotPrice returns the quote asset per token at the current reserves.
func (c BondingCurve) SpotPrice() (math.LegacyDec, error) {
	quote, err := SafeAdd(c.VirtualReserveA, c.RealReserveA)
	if err != nil {
		return math.LegacyDec{}, err
	}
	tokens, err := SafeAdd(c.VirtualReserveB, c.RealReserveB)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if tokens.IsZero() {
		return math.LegacyDec{}, ErrInsufficientLiquidity.Wrapf("bonding curve %s has no tokens", c.Mint)
	}
	return math.LegacyNewDecFromInt(quote).Quo(math.LegacyNewDecFromInt(tokens)), nil
}

func (c BondingCurve) quote(amountIn, virtualIn, realIn, virtualOut, realOut math.Int) (math.Int, error) {
	if !isPositive(amountIn) {
		return math.Int{}, ErrZeroAmount.Wrapf("amount in %v", amountIn)
	}
	reserveIn, err := SafeAdd(virtualIn, realIn)
	if err != nil {
		return math.Int{}, err
	}
	reserveOut, err := SafeAdd(virtualOut, realOut)
	if err != nil {
		return math.Int{}, err
	}
	out, err := ConstantProductOut(amountIn, reserveIn, reserveOut)
	if err != nil {
		return math.Int{}, err
	}
	if out.IsZero() {
		return math.Int{}, ErrZeroAmount.Wrapf("%s buys nothing on curve %s", amountIn, c.Mint)
	}
	if out.GT(realOut) {
		return math.Int{}, ErrInsufficientLiquidity.Wrapf("curve %s: output %s exceeds real reserve %s", c.Mint, out, realOut)
	}
	return out, nil
}
