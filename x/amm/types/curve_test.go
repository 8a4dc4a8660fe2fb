package types

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestApplyFee(t *testing.T) {
	net, err := ApplyFee(math.NewInt(1000), 30)
	require.NoError(t, err)
	requireInt(t, 997, net)

	net, err = ApplyFee(math.NewInt(1000), 0)
	require.NoError(t, err)
	requireInt(t, 1000, net)

	// the fee on a single unit rounds in favour of the pool
	net, err = ApplyFee(math.NewInt(1), 30)
	require.NoError(t, err)
	requireInt(t, 0, net)

	_, err = ApplyFee(math.NewInt(1000), BasisPoints+1)
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestConstantProductOut(t *testing.T) {
	out, err := ConstantProductOut(math.NewInt(10), math.NewInt(100), math.NewInt(400))
	require.NoError(t, err)
	requireInt(t, 36, out)

	out, err = ConstantProductOut(math.NewInt(100), math.NewInt(100), math.NewInt(400))
	require.NoError(t, err)
	requireInt(t, 200, out)

	_, err = ConstantProductOut(math.NewInt(10), math.ZeroInt(), math.NewInt(400))
	require.ErrorIs(t, err, ErrInsufficientLiquidity)

	_, err = ConstantProductOut(bigPow2(200), math.NewInt(1), bigPow2(100))
	require.ErrorIs(t, err, ErrArithmeticOverflow)
}

func TestGeometricMeanShares(t *testing.T) {
	shares, err := GeometricMeanShares(math.NewInt(100), math.NewInt(400))
	require.NoError(t, err)
	requireInt(t, 200, shares)

	shares, err = GeometricMeanShares(math.NewInt(2), math.NewInt(3))
	require.NoError(t, err)
	requireInt(t, 2, shares)

	_, err = GeometricMeanShares(bigPow2(130), bigPow2(130))
	require.ErrorIs(t, err, ErrArithmeticOverflow)
}

func TestCheckRatio(t *testing.T) {
	reserveA, reserveB := math.NewInt(100), math.NewInt(400)

	tests := []struct {
		name      string
		a, b      int64
		tolerance uint32
		wantErr   error
	}{
		{"exact ratio", 50, 200, 0, nil},
		{"half the ratio", 50, 100, DefaultRatioToleranceBps, ErrRatioMismatch},
		{"within one percent", 100, 404, 100, nil},
		{"just outside one percent", 100, 405, 100, ErrRatioMismatch},
		{"zero tolerance rejects any skew", 100, 401, 0, ErrRatioMismatch},
		{"full tolerance accepts anything", 1, 10_000, BasisPoints, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckRatio(math.NewInt(tc.a), math.NewInt(tc.b), reserveA, reserveB, tc.tolerance)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// TestCheckRatio_LargeReserves tests that the tolerance comparison holds
// wherever the cross products themselves fit
func TestCheckRatio_LargeReserves(t *testing.T) {
	reserve := bigPow2(125)

	require.NoError(t, CheckRatio(reserve, reserve, reserve, reserve, DefaultRatioToleranceBps))
	require.NoError(t, CheckRatio(reserve, reserve.Add(bigPow2(100)), reserve, reserve, DefaultRatioToleranceBps))

	err := CheckRatio(reserve, reserve.Add(bigPow2(124)), reserve, reserve, DefaultRatioToleranceBps)
	require.ErrorIs(t, err, ErrRatioMismatch)

	_, err = ConstantProductOut(bigPow2(124), reserve, reserve)
	require.NoError(t, err)
}
