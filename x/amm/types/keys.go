package types

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

// Derivation seeds. Every address and denom a pool owns is derived from the
// canonical pair key with one of these, so lookups never need an index.
const (
	PoolSeed  = "pool"
	VaultSeed = "vault/"

	// ShareDenomPrefix prefixes the LP-share denom of every pool.
	ShareDenomPrefix = ModuleName + "/lp"
)

// Store key prefixes
var (
	// PoolKeyPrefix is the prefix for pool records keyed by canonical pair
	PoolKeyPrefix = []byte{0x01}

	// PoolCountKey is the key for the number of registered pools
	PoolCountKey = []byte{0x02}

	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x03}

	// VaultKeyPrefix is the prefix for vault custody records
	VaultKeyPrefix = []byte{0x04}
)

// PairKey returns the canonical identity of an (assetA, assetB) pair. The
// first denom is length-prefixed so that ("ab", "c") and ("a", "bc") never
// collide.
func PairKey(assetA, assetB string) []byte {
	key := address.MustLengthPrefix([]byte(assetA))
	return append(key, assetB...)
}

// PoolKey returns the store key for the pool of a canonical pair
func PoolKey(assetA, assetB string) []byte {
	pair := PairKey(assetA, assetB)
	key := make([]byte, 0, len(PoolKeyPrefix)+len(pair))
	key = append(key, PoolKeyPrefix...)
	return append(key, pair...)
}

// VaultKey returns the store key for the vault holding asset on behalf of the
// pool identified by pairKey.
func VaultKey(pairKey []byte, asset string) []byte {
	prefixed := address.MustLengthPrefix(pairKey)
	key := make([]byte, 0, len(VaultKeyPrefix)+len(prefixed)+len(asset))
	key = append(key, VaultKeyPrefix...)
	key = append(key, prefixed...)
	return append(key, asset...)
}

// VaultKeyPrefixForPool returns the prefix under which both vaults of a pool
// are stored.
func VaultKeyPrefixForPool(pairKey []byte) []byte {
	prefixed := address.MustLengthPrefix(pairKey)
	key := make([]byte, 0, len(VaultKeyPrefix)+len(prefixed))
	key = append(key, VaultKeyPrefix...)
	return append(key, prefixed...)
}

// PoolAuthorityAddress derives the address that owns a pool's vaults and
// mints its shares.
func PoolAuthorityAddress(assetA, assetB string) []byte {
	return address.Module(ModuleName, []byte(PoolSeed), PairKey(assetA, assetB))
}

// VaultAddress derives the custody address of one asset under a pool
// authority.
func VaultAddress(authority []byte, asset string) []byte {
	return address.Derive(authority, []byte(VaultSeed+asset))
}

// ShareDenom returns the LP-share denom of the pool owned by authority.
func ShareDenom(authority []byte) string {
	return fmt.Sprintf("%s/%x", ShareDenomPrefix, authority)
}
