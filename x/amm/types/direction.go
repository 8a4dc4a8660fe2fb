package types

// SwapDirection selects which side of a pool is the input of a swap.
type SwapDirection int32

const (
	SwapDirectionUnspecified SwapDirection = iota
	// SwapAToB sells AssetA into the pool and buys AssetB.
	SwapAToB
	// SwapBToA sells AssetB into the pool and buys AssetA.
	SwapBToA
)

func (d SwapDirection) String() string {
	switch d {
	case SwapAToB:
		return "a_to_b"
	case SwapBToA:
		return "b_to_a"
	default:
		return "unspecified"
	}
}

// Validate rejects anything but the two defined directions.
func (d SwapDirection) Validate() error {
	if d != SwapAToB && d != SwapBToA {
		return ErrInvalidDirection.Wrapf("%d", int32(d))
	}
	return nil
}

// Reverse returns the opposite direction.
func (d SwapDirection) Reverse() SwapDirection {
	switch d {
	case SwapAToB:
		return SwapBToA
	case SwapBToA:
		return SwapAToB
	default:
		return SwapDirectionUnspecified
	}
}
