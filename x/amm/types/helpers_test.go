package types

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func requireInt(t testing.TB, want int64, got math.Int) {
	t.Helper()
	require.Truef(t, got.Equal(math.NewInt(want)), "want %d, got %s", want, got)
}

// fundedPool returns the pool of (uatom, uosmo) with the given reserves and
// share supply.
func fundedPool(reserveA, reserveB, shares int64) Pool {
	pool := NewPool("uatom", "uosmo")
	pool.ReserveA = math.NewInt(reserveA)
	pool.ReserveB = math.NewInt(reserveB)
	pool.TotalShares = math.NewInt(shares)
	return pool
}
