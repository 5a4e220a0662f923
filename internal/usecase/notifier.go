package usecase

import (
	"context"
	"time"

	"iecnexus/internal/domain/repository"
	"iecnexus/internal/domain/service"
	"iecnexus/pkg/logger"
)

// Notification categories, carried in the push payload for future
// per-category opt-outs.
const (
	CategoryDirectMessage = "dm"
	CategoryGroupMessage  = "group"
	CategoryAnnouncement  = "announcement"
	CategoryFeed          = "feed"
	CategoryFollow        = "follow"
	CategoryLeaderboard   = "leaderboard"
)

const dispatchTimeout = 10 * time.Second

// Notifier fans out push notifications. Every path here is best-effort: a
// missing token is a no-op and a delivery failure is logged and swallowed, so
// notification trouble can never fail the operation that triggered it.
type Notifier struct {
	userRepo repository.UserRepository
	sender   service.NotificationSender
}

func NewNotifier(userRepo repository.UserRepository, sender service.NotificationSender) *Notifier {
	return &Notifier{
		userRepo: userRepo,
		sender:   sender,
	}
}

// Dispatch sends one push to one user, synchronously.
func (n *Notifier) Dispatch(ctx context.Context, userID, title, body, link, category string) {
	user, err := n.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("notify: lookup recipient %s: %v", userID, err)
		return
	}
	if user.FCMToken == "" {
		return
	}

	err = n.sender.Send(ctx, user.FCMToken, service.Notification{
		Title:    title,
		Body:     body,
		Link:     link,
		Category: category,
	})
	if err != nil {
		logger.Warn("notify: send to %s: %v", userID, err)
	}
}

// DispatchAsync sends one push without blocking the caller. The request
// context is not reused: the push outlives the triggering request.
func (n *Notifier) DispatchAsync(userID, title, body, link, category string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		n.Dispatch(ctx, userID, title, body, link, category)
	}()
}

// FanOutAsync sends the same push to each recipient sequentially, skipping
// excludeUserID (typically the actor).
func (n *Notifier) FanOutAsync(recipients []string, excludeUserID, title, body, link, category string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout*time.Duration(len(recipients)+1))
		defer cancel()
		for _, userID := range recipients {
			if userID == excludeUserID {
				continue
			}
			n.Dispatch(ctx, userID, title, body, link, category)
		}
	}()
}

// BroadcastAsync pushes to every user holding a device token.
func (n *Notifier) BroadcastAsync(title, body, link, category string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		users, err := n.userRepo.ListWithDeviceTokens(ctx)
		if err != nil {
			logger.Warn("notify: list broadcast recipients: %v", err)
			return
		}
		for _, user := range users {
			if user.FCMToken == "" {
				continue
			}
			err := n.sender.Send(ctx, user.FCMToken, service.Notification{
				Title:    title,
				Body:     body,
				Link:     link,
				Category: category,
			})
			if err != nil {
				logger.Warn("notify: broadcast to %s: %v", user.ID, err)
			}
		}
	}()
}
