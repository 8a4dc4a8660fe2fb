package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

var (
	bankBalancePrefix = []byte{0x01}
	bankSupplyPrefix  = []byte{0x02}
)

// Bank is a minimal store-backed bank keeper. Balances live in their own KV
// store mounted in the same multistore as the module under test, so cache
// branches and rollbacks cover them exactly as they would on chain.
type Bank struct {
	key storetypes.StoreKey

	// failure injection, single-goroutine tests only
	sendsBeforeFailure int
	failMint           bool
}

// NewBank returns a bank over the store identified by key.
func NewBank(key storetypes.StoreKey) *Bank {
	return &Bank{key: key, sendsBeforeFailure: -1}
}

// FailSendAfter makes every SendCoins call after the next n fail.
func (b *Bank) FailSendAfter(n int) {
	b.sendsBeforeFailure = n
}

// FailMint makes MintCoins fail.
func (b *Bank) FailMint(fail bool) {
	b.failMint = fail
}

// Reset clears injected failures.
func (b *Bank) Reset() {
	b.sendsBeforeFailure = -1
	b.failMint = false
}

// ModuleAddress returns the account address of a module.
func ModuleAddress(moduleName string) sdk.AccAddress {
	return sdk.AccAddress(address.Module(moduleName))
}

// FundAccount mints coins straight into addr.
func (b *Bank) FundAccount(ctx context.Context, addr sdk.AccAddress, coins sdk.Coins) error {
	for _, coin := range coins {
		if err := b.addBalance(ctx, addr, coin); err != nil {
			return err
		}
		b.setSupply(ctx, coin.Denom, b.GetSupply(ctx, coin.Denom).Amount.Add(coin.Amount))
	}
	return nil
}

func (b *Bank) GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	bz := b.store(ctx).Get(balanceKey(addr, denom))
	return sdk.NewCoin(denom, decodeAmount(bz))
}

func (b *Bank) GetSupply(ctx context.Context, denom string) sdk.Coin {
	bz := b.store(ctx).Get(append(append([]byte{}, bankSupplyPrefix...), denom...))
	return sdk.NewCoin(denom, decodeAmount(bz))
}

func (b *Bank) SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	if b.sendsBeforeFailure == 0 {
		return fmt.Errorf("injected send failure")
	}
	if b.sendsBeforeFailure > 0 {
		b.sendsBeforeFailure--
	}
	if !amt.IsValid() {
		return sdkerrors.ErrInvalidCoins.Wrap(amt.String())
	}

	for _, coin := range amt {
		if err := b.subBalance(ctx, fromAddr, coin); err != nil {
			return err
		}
		if err := b.addBalance(ctx, toAddr, coin); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bank) MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error {
	if b.failMint {
		return fmt.Errorf("injected mint failure")
	}
	return b.FundAccount(ctx, ModuleAddress(moduleName), amt)
}

func (b *Bank) BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error {
	for _, coin := range amt {
		if err := b.subBalance(ctx, ModuleAddress(moduleName), coin); err != nil {
			return err
		}
		b.setSupply(ctx, coin.Denom, b.GetSupply(ctx, coin.Denom).Amount.Sub(coin.Amount))
	}
	return nil
}

func (b *Bank) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return b.SendCoins(ctx, ModuleAddress(senderModule), recipientAddr, amt)
}

func (b *Bank) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return b.SendCoins(ctx, senderAddr, ModuleAddress(recipientModule), amt)
}

func (b *Bank) store(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(b.key)
}

func (b *Bank) addBalance(ctx context.Context, addr sdk.AccAddress, coin sdk.Coin) error {
	balance := b.GetBalance(ctx, addr, coin.Denom)
	b.setBalance(ctx, addr, balance.Amount.Add(coin.Amount), coin.Denom)
	return nil
}

func (b *Bank) subBalance(ctx context.Context, addr sdk.AccAddress, coin sdk.Coin) error {
	balance := b.GetBalance(ctx, addr, coin.Denom)
	if balance.Amount.LT(coin.Amount) {
		return sdkerrors.ErrInsufficientFunds.Wrapf("%s is smaller than %s", balance, coin)
	}
	b.setBalance(ctx, addr, balance.Amount.Sub(coin.Amount), coin.Denom)
	return nil
}

func (b *Bank) setBalance(ctx context.Context, addr sdk.AccAddress, amount math.Int, denom string) {
	key := balanceKey(addr, denom)
	if amount.IsZero() {
		b.store(ctx).Delete(key)
		return
	}
	bz, err := amount.Marshal()
	if err != nil {
		panic(err)
	}
	b.store(ctx).Set(key, bz)
}

func (b *Bank) setSupply(ctx context.Context, denom string, amount math.Int) {
	bz, err := amount.Marshal()
	if err != nil {
		panic(err)
	}
	b.store(ctx).Set(append(append([]byte{}, bankSupplyPrefix...), denom...), bz)
}

func balanceKey(addr sdk.AccAddress, denom string) []byte {
	key := append([]byte{}, bankBalancePrefix...)
	key = append(key, address.MustLengthPrefix(addr)...)
	return append(key, denom...)
}

func decodeAmount(bz []byte) math.Int {
	if bz == nil {
		return math.ZeroInt()
	}
	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		panic(err)
	}
	return amount
}
