package keeper

import (
	"sync"
)

// poolLocks serialises mutations of the same pool. Each created pool maps its
// canonical pair key to its own mutex, so different pools never contend. The
// registry mutex guards the pool counter during creation and is always taken
// before a pool lock.
type poolLocks struct {
	pools    sync.Map // string(pairKey) -> *sync.Mutex
	registry sync.Mutex
}

func newPoolLocks() *poolLocks {
	return &poolLocks{}
}

// lock blocks until the pool's mutex is held and returns its release func.
// Callers must know the pool exists or hold the registry lock.
func (l *poolLocks) lock(pairKey []byte) func() {
	mu, _ := l.pools.LoadOrStore(string(pairKey), &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// forget drops the mutex of a pair whose creation failed. The registry lock
// must be held.
func (l *poolLocks) forget(pairKey []byte) {
	l.pools.Delete(string(pairKey))
}

// len returns the number of pool mutexes allocated so far.
func (l *poolLocks) len() int {
	n := 0
	l.pools.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (l *poolLocks) lockRegistry() func() {
	l.registry.Lock()
	return l.registry.Unlock
}
