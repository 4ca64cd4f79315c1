package application

import "sync"

// accountLocker hands out one mutex per account address. Everything mutating
// the notes or transactions of an account runs under its lock, so concurrent
// sends from the same account serialize while different accounts proceed in
// parallel.
type accountLocker struct {
	mtx   sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocker() *accountLocker {
	return &accountLocker{locks: map[string]*sync.Mutex{}}
}

func (l *accountLocker) lock(addr string) func() {
	l.mtx.Lock()
	m, ok := l.locks[addr]
	if !ok {
		m = &sync.Mutex{}
		l.locks[addr] = m
	}
	l.mtx.Unlock()

	m.Lock()
	return m.Unlock
}
