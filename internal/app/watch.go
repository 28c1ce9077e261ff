package app

import (
	"context"
	"time"

	"go.trai.ch/capigrow/internal/core/domain"
)

// Update is the dashboard summary reported by Watch.
type Update struct {
	Unread        int
	Currency      string
	CurrentValue  float64
	WalletBalance float64
	Holdings      int
}

// Watch reports the unread count and portfolio balances, then again each time they
// change. The cached reads are expired every interval, and any write in this process
// that invalidates them triggers a refresh at once. Watch returns nil when ctx ends.
func (a *App) Watch(ctx context.Context, every time.Duration, fn func(Update)) error {
	changed := make(chan struct{}, 1)
	notify := func(domain.CacheKey) {
		select {
		case changed <- struct{}{}:
		default:
		}
	}
	defer a.svc.Notifications.Watch(notify)()
	defer a.svc.Investments.WatchPortfolio(notify)()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var (
		last    Update
		started bool
		refresh = true
	)
	for {
		if refresh {
			u, err := a.summary(ctx)
			switch {
			case ctx.Err() != nil:
				return nil
			case err != nil:
				return err
			case !started || u != last:
				fn(u)
				last, started = u, true
			}
			refresh = false
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			a.svc.Notifications.Expire()
			a.svc.Investments.ExpirePortfolio()
		case <-changed:
			refresh = true
		}
	}
}

func (a *App) summary(ctx context.Context) (Update, error) {
	unread, err := value(a.logger, a.svc.Notifications.UnreadCount(ctx))
	if err != nil {
		return Update{}, err
	}
	p, err := a.Portfolio(ctx)
	if err != nil {
		return Update{}, err
	}
	return Update{
		Unread:        unread,
		Currency:      p.Currency,
		CurrentValue:  p.CurrentValue,
		WalletBalance: p.WalletBalance,
		Holdings:      len(p.Holdings),
	}, nil
}
