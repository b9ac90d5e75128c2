// Package notify fans out new-order announcements to an external channel.
// Notification is strictly best-effort: the order is already durably
// recorded by the time a notifier runs, so delivery failures are logged and
// swallowed, never escalated into the submission result.
package notify

import (
	"context"

	"tabletap/internal/model"
)

// Notifier announces a newly created order to an external channel.
type Notifier interface {
	NotifyOrderCreated(ctx context.Context, n *model.OrderNotification) error
}

// Noop is the notifier used when no external channel is configured.
type Noop struct{}

// NotifyOrderCreated does nothing.
func (Noop) NotifyOrderCreated(ctx context.Context, n *model.OrderNotification) error {
	return nil
}
