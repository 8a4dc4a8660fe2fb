package types

import (
	"bytes"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Vault is the custody record of one asset of one pool. Its Address is
// derived from the pool authority and holds the coins; Balance is the amount
// attributed to the pool through the liquidity and swap engines.
type Vault struct {
	Asset   string         `json:"asset"`
	Address sdk.AccAddress `json:"address"`
	Balance math.Int       `json:"balance"`
}

// NewVault returns the empty vault for asset under pool.
func NewVault(pool Pool, asset string) Vault {
	return Vault{
		Asset:   asset,
		Address: sdk.AccAddress(VaultAddress(pool.Authority, asset)),
		Balance: math.ZeroInt(),
	}
}

// Validate checks that the vault belongs to pool and that its balance is sane.
func (v Vault) Validate(pool Pool) error {
	if !pool.HasAsset(v.Asset) {
		return ErrInvariantViolation.Wrapf("vault asset %s not in pool %s", v.Asset, pool.Name())
	}
	if !bytes.Equal(v.Address, VaultAddress(pool.Authority, v.Asset)) {
		return ErrInvariantViolation.Wrapf("vault %s of pool %s: address does not match derivation", v.Asset, pool.Name())
	}
	if v.Balance.IsNil() || v.Balance.IsNegative() {
		return ErrInvariantViolation.Wrapf("vault %s of pool %s: invalid balance %s", v.Asset, pool.Name(), v.Balance)
	}
	return nil
}

// Coin returns the vault balance as a coin.
func (v Vault) Coin() sdk.Coin {
	return sdk.NewCoin(v.Asset, v.Balance)
}

func (v Vault) String() string {
	return fmt.Sprintf("%s%s@%s", v.Balance, v.Asset, v.Address)
}
