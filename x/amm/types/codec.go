package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
)

// RegisterLegacyAminoCodec registers the module's stored types.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&Pool{}, "amm/Pool", nil)
	cdc.RegisterConcrete(&Vault{}, "amm/Vault", nil)
	cdc.RegisterConcrete(&Params{}, "amm/Params", nil)
}

var (
	amino = codec.NewLegacyAmino()

	// ModuleCdc encodes every value the keeper writes to its store.
	ModuleCdc = amino
)

func init() {
	RegisterLegacyAminoCodec(amino)
	amino.Seal()
}
