package gameclock

import (
	"context"
	"time"

	"idletycoon/internal/domain/economy"
)

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFactory func(d time.Duration) Ticker

// Clock drives two independent periodic triggers. Missed ticks are dropped,
// never replayed; long gaps are covered by the offline catch-up at load time.
type Clock struct {
	AccrualInterval  time.Duration
	AutosaveInterval time.Duration
	OnAccrual        func(ctx context.Context)
	OnAutosave       func(ctx context.Context)
	NewTicker        TickerFactory
}

// Run blocks until ctx is done. Callbacks run on the Run goroutine one at a
// time.
func (c Clock) Run(ctx context.Context) error {
	newTicker := c.NewTicker
	if newTicker == nil {
		newTicker = RealTicker
	}
	accrualEvery := c.AccrualInterval
	if accrualEvery <= 0 {
		accrualEvery = economy.AccrualInterval
	}
	autosaveEvery := c.AutosaveInterval
	if autosaveEvery <= 0 {
		autosaveEvery = economy.AutosaveInterval
	}

	accrual := newTicker(accrualEvery)
	defer accrual.Stop()
	autosave := newTicker(autosaveEvery)
	defer autosave.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-accrual.C():
			if c.OnAccrual != nil {
				c.OnAccrual(ctx)
			}
		case <-autosave.C():
			if c.OnAutosave != nil {
				c.OnAutosave(ctx)
			}
		}
	}
}

type realTicker struct {
	t *time.Ticker
}

func RealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }
