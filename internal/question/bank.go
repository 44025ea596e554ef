package question

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// loadTimeout bounds a shared load.
const loadTimeout = 60 * time.Second

// Bank holds the last successfully loaded records. Callers always receive a
// copy. Concurrent loads share one fetch.
type Bank struct {
	loader *Loader
	maxAge time.Duration
	now    func() time.Time

	group singleflight.Group

	mu       sync.RWMutex
	items    []Record
	loadedAt time.Time
}

type BankStats struct {
	Source   string    `json:"source"`
	Count    int       `json:"count"`
	LoadedAt time.Time `json:"loaded_at"`
}

// NewBank keeps a snapshot for maxAge before reloading. Zero keeps it until
// Reload is called.
func NewBank(loader *Loader, maxAge time.Duration) *Bank {
	return &Bank{loader: loader, maxAge: maxAge, now: time.Now}
}

// Snapshot returns the cached records, loading them first if nothing was
// loaded yet or the snapshot expired. Load failures are not cached.
func (b *Bank) Snapshot(ctx context.Context) ([]Record, error) {
	b.mu.RLock()
	fresh := !b.loadedAt.IsZero() && (b.maxAge <= 0 || b.now().Sub(b.loadedAt) < b.maxAge)
	items := b.items
	b.mu.RUnlock()

	if fresh {
		return CloneAll(items), nil
	}
	return b.Reload(ctx)
}

// Reload forces a fetch. A reload requested while another is in flight
// waits for and shares that result. The shared load keeps the first caller's
// values but not its cancellation; each caller stops waiting when its own ctx
// ends.
func (b *Bank) Reload(ctx context.Context) ([]Record, error) {
	ch := b.group.DoChan("load", func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		items, err := b.loader.Load(loadCtx)
		if err != nil {
			return nil, err
		}
		b.mu.Lock()
		b.items = items
		b.loadedAt = b.now()
		b.mu.Unlock()
		return items, nil
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, &LoadError{Source: b.loader.Source().Name(), Err: ctx.Err()}
	}
	if res.Err != nil {
		return nil, res.Err
	}
	return CloneAll(res.Val.([]Record)), nil
}

func (b *Bank) Stats() BankStats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return BankStats{
		Source:   b.loader.Source().Name(),
		Count:    len(b.items),
		LoadedAt: b.loadedAt,
	}
}
