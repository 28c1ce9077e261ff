package app

import (
	"context"

	"go.trai.ch/capigrow/internal/core/domain"
)

// Transactions returns one page of history.
func (a *App) Transactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	return value(a.logger, a.svc.Transactions.List(ctx, filter))
}

// Transaction returns one transaction.
func (a *App) Transaction(ctx context.Context, id string) (domain.Transaction, error) {
	if err := requireID("transaction", id); err != nil {
		return domain.Transaction{}, err
	}
	return value(a.logger, a.svc.Transactions.Get(ctx, id))
}

// Notifications returns the notifications and the unread count.
func (a *App) Notifications(ctx context.Context) ([]domain.Notification, int, error) {
	list, err := value(a.logger, a.svc.Notifications.List(ctx))
	if err != nil {
		return nil, 0, err
	}
	unread, err := value(a.logger, a.svc.Notifications.UnreadCount(ctx))
	if err != nil {
		return nil, 0, err
	}
	return list, unread, nil
}

// MarkRead acknowledges one notification.
func (a *App) MarkRead(ctx context.Context, id string) (domain.Notification, error) {
	return outcome(a.svc.Notifications.MarkRead(ctx, id))
}

// MarkAllRead acknowledges every notification.
func (a *App) MarkAllRead(ctx context.Context) error {
	_, err := outcome(a.svc.Notifications.MarkAllRead(ctx))
	return err
}
