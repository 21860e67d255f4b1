package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
)

// lockTable hands out one exclusive lock per key. Each lock is a buffered
// channel of size one so acquisition can be bounded by a timeout.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]chan struct{})}
}

func (l *lockTable) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	return ch
}

func (l *lockTable) acquire(ctx context.Context, key string, timeout time.Duration) error {
	ch := l.slot(key)
	select {
	case ch <- struct{}{}:
		return nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ch <- struct{}{}:
		return nil
	case <-timer.C:
		return fmt.Errorf("%w: timed out after %s waiting for %s", apperrors.ErrBusy, timeout, key)
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", apperrors.ErrBusy, ctx.Err())
	}
}

func (l *lockTable) release(key string) {
	<-l.slot(key)
}
