package fcm

import (
	"context"

	"firebase.google.com/go/v4/messaging"

	"iecnexus/internal/domain/service"
)

// Sender delivers push notifications through Firebase Cloud Messaging.
type Sender struct {
	client *messaging.Client
}

func NewSender(client *messaging.Client) *Sender {
	return &Sender{
		client: client,
	}
}

func (s *Sender) Send(ctx context.Context, token string, n service.Notification) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: map[string]string{
			"link":     n.Link,
			"category": n.Category,
		},
		Webpush: &messaging.WebpushConfig{
			FCMOptions: &messaging.WebpushFCMOptions{
				Link: n.Link,
			},
		},
	}

	_, err := s.client.Send(ctx, msg)
	return err
}

var _ service.NotificationSender = (*Sender)(nil)
