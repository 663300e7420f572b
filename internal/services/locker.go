package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// walletLocks serialises work per wallet. Entries are reference counted and
// removed once the last holder or waiter leaves.
type walletLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*walletLock
}

type walletLock struct {
	ch   chan struct{}
	refs int
}

func newWalletLocks() *walletLocks {
	return &walletLocks{locks: make(map[uuid.UUID]*walletLock)}
}

// Lock blocks until the wallet is free or ctx is done.
func (l *walletLocks) Lock(ctx context.Context, walletID uuid.UUID) (unlock func(), err error) {
	l.mu.Lock()
	wl, ok := l.locks[walletID]
	if !ok {
		wl = &walletLock{ch: make(chan struct{}, 1)}
		l.locks[walletID] = wl
	}
	wl.refs++
	l.mu.Unlock()

	select {
	case wl.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(walletID, wl)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-wl.ch
			l.release(walletID, wl)
		})
	}, nil
}

func (l *walletLocks) release(walletID uuid.UUID, wl *walletLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	wl.refs--
	if wl.refs == 0 {
		delete(l.locks, walletID)
	}
}

func (l *walletLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
