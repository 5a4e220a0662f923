package service

import "context"

// Notification is an OS-level push shown outside the app. Category is carried
// for future per-category opt-outs; recipients do not filter on it yet.
type Notification struct {
	Title    string
	Body     string
	Link     string
	Category string
}

// NotificationSender delivers a push to a single device token. Callers treat
// delivery as best-effort: a send failure must never fail the operation that
// triggered it.
type NotificationSender interface {
	Send(ctx context.Context, token string, notification Notification) error
}
