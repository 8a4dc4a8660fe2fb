package types

import (
	"fmt"
)

// GenesisState defines the AMM module's genesis state.
type GenesisState struct {
	Params Params `json:"params"`
	Pools  []Pool `json:"pools"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
		Pools:  []Pool{},
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return ErrInvalidGenesis.Wrapf("params: %v", err)
	}
	if gs.Params.MaxPools > 0 && uint64(len(gs.Pools)) > gs.Params.MaxPools {
		return ErrInvalidGenesis.Wrapf("%d pools exceed max pools %d", len(gs.Pools), gs.Params.MaxPools)
	}

	seen := make(map[string]struct{}, len(gs.Pools))
	for i, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return ErrInvalidGenesis.Wrapf("pool %d: %v", i, err)
		}
		key := string(pool.Key())
		if _, dup := seen[key]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate pool %s", pool.Name())
		}
		seen[key] = struct{}{}
	}
	return nil
}

func (gs GenesisState) String() string {
	return fmt.Sprintf("params={%s} pools=%d", gs.Params, len(gs.Pools))
}
